package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fleetgo/maintenance/api/handler"
)

type Handlers struct {
	Fleet    *apiHandler.FleetHandler
	Task     *apiHandler.TaskHandler
	Schedule *apiHandler.ScheduleHandler
	Photo    *apiHandler.PhotoHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, accessLog func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	wrap := accessLog
	if wrap == nil {
		wrap = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r.GET("/health", wrap(handlers.Health.Check))

	r.GET("/api/v1/dashboard", wrap(handlers.Fleet.GetDashboard))
	r.GET("/api/v1/vehicles", wrap(handlers.Fleet.GetVehicles))
	r.GET("/api/v1/technicians", wrap(handlers.Fleet.GetTechnicians))
	r.GET("/api/v1/technicians/{id}/tasks", wrap(handlers.Fleet.GetTechnicianTasks))

	r.GET("/api/v1/tasks", wrap(handlers.Task.GetTasks))
	r.GET("/api/v1/tasks/{id}", wrap(handlers.Task.GetTask))
	r.POST("/api/v1/tasks/{id}/complete", wrap(handlers.Task.CompleteTask))

	r.POST("/api/v1/schedule/generate", wrap(handlers.Schedule.Generate))
	r.POST("/api/v1/schedule/assign", wrap(handlers.Schedule.Assign))
	r.POST("/api/v1/schedule/run", wrap(handlers.Schedule.Run))

	r.GET("/uploads/{name}", wrap(handlers.Photo.Serve))

	return r
}
