package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fleetgo/maintenance/api/handler"
	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/internal/config"
	"github.com/fleetgo/maintenance/internal/infrastructure/monitor"
	"github.com/fleetgo/maintenance/internal/infrastructure/photostore"
	pgInfra "github.com/fleetgo/maintenance/internal/infrastructure/postgres"
	redisInfra "github.com/fleetgo/maintenance/internal/infrastructure/redis"
	"github.com/fleetgo/maintenance/internal/middleware"
	"github.com/fleetgo/maintenance/internal/router"
	"github.com/fleetgo/maintenance/internal/services/lifecycle"
	schedulerSvc "github.com/fleetgo/maintenance/internal/services/scheduler"
	"github.com/fleetgo/maintenance/pkg/clock"
	"github.com/fleetgo/maintenance/pkg/httpcontext"
	"github.com/fleetgo/maintenance/pkg/logger"
	"github.com/fleetgo/maintenance/repository/postgres"
	redisRepo "github.com/fleetgo/maintenance/repository/redis"
	completionUC "github.com/fleetgo/maintenance/usecase/completion"
	fleetUC "github.com/fleetgo/maintenance/usecase/fleet"
	"github.com/fleetgo/maintenance/usecase/scheduling"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	photoStore, err := photostore.Open(cfg.Photos.Path)
	if err != nil {
		zapLogger.Fatal("failed to open photo store", zap.Error(err))
	}
	manager.Register("photo_store", func(ctx context.Context) error {
		return photoStore.Close()
	})

	mon := monitor.New(pool, redisClient, photoStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	vehicleRepo := postgres.NewVehicleRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	runStateRepo := redisRepo.NewRunStateRepository(redisClient)

	clk := clock.Real{}
	calendar := domain.DefaultIntervalCalendar()

	generator := scheduling.NewGenerator(vehicleRepo, taskRepo, calendar, cfg.Scheduling.HorizonDays, zapLogger)
	workload := scheduling.NewWorkloadTracker(taskRepo)
	assigner := scheduling.NewAssigner(taskRepo, technicianRepo, workload, cfg.Scheduling.Capacity, zapLogger)

	schedService, err := schedulerSvc.New(generator, assigner, runStateRepo, clk, zapLogger, schedulerSvc.Config{
		Interval:   cfg.Scheduling.Interval,
		RunLockTTL: cfg.Scheduling.RunLockTTL,
		Periodic:   cfg.Scheduling.PeriodicEnabled,
	})
	if err != nil {
		zapLogger.Fatal("scheduler setup failed", zap.Error(err))
	}
	schedService.Start()
	manager.Register("scheduler", func(ctx context.Context) error {
		schedService.Stop(ctx)
		return nil
	})

	fleetUseCase := fleetUC.New(vehicleRepo, technicianRepo, taskRepo, statsRepo, runStateRepo, clk, zapLogger)
	completionUseCase := completionUC.New(taskRepo, photoStore, clk, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Fleet:    apiHandler.NewFleetHandler(fleetUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(fleetUseCase, completionUseCase, ctxAdapter, zapLogger),
		Schedule: apiHandler.NewScheduleHandler(schedService, ctxAdapter, zapLogger),
		Photo:    apiHandler.NewPhotoHandler(photoStore, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	accessLog := middleware.AccessLog(zapLogger)
	r := router.New(handlers, accessLog)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
