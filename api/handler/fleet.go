package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/api/transport"
	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/httpcontext"
	fleetUC "github.com/fleetgo/maintenance/usecase/fleet"
)

type FleetHandler struct {
	baseHandler
	uc *fleetUC.UseCase
}

func NewFleetHandler(uc *fleetUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FleetHandler {
	return &FleetHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List vehicles
// @Tags fleet
// @Router /api/v1/vehicles [get]
func (h *FleetHandler) GetVehicles(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	vehicles, err := h.uc.Vehicles(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, vehicles)
}

// @Summary List technicians with workloads
// @Tags fleet
// @Router /api/v1/technicians [get]
func (h *FleetHandler) GetTechnicians(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	techs, err := h.uc.Technicians(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, techs)
}

// @Summary Active tasks for one technician
// @Tags fleet
// @Router /api/v1/technicians/{id}/tasks [get]
func (h *FleetHandler) GetTechnicianTasks(ctx *fasthttp.RequestCtx) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid technician id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tech, tasks, err := h.uc.TechnicianTasks(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"technician": tech,
		"tasks":      tasks,
	})
}

// @Summary Dashboard summary
// @Tags fleet
// @Router /api/v1/dashboard [get]
func (h *FleetHandler) GetDashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dashboard, err := h.uc.Dashboard(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, dashboard)
}
