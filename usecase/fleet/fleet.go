package fleet

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/clock"
	"github.com/fleetgo/maintenance/repository"
)

// UseCase serves the read side: vehicle and technician listings, task
// views and the dashboard. It holds no scheduling logic of its own.
type UseCase struct {
	vehicles repository.VehicleRepository
	techs    repository.TechnicianRepository
	tasks    repository.TaskRepository
	stats    repository.StatsRepository
	runs     repository.RunStateRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func New(
	vehicles repository.VehicleRepository,
	techs repository.TechnicianRepository,
	tasks repository.TaskRepository,
	stats repository.StatsRepository,
	runs repository.RunStateRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *UseCase {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		vehicles: vehicles,
		techs:    techs,
		tasks:    tasks,
		stats:    stats,
		runs:     runs,
		clock:    clk,
		logger:   logger,
	}
}

// Dashboard aggregates the landing-page numbers.
type Dashboard struct {
	Counts   repository.TaskCounts       `json:"counts"`
	Workload []repository.TechnicianLoad `json:"workload"`
	Gallery  []repository.GalleryEntry   `json:"gallery"`
	LastRun  *domain.RunReport           `json:"last_run,omitempty"`
}

// TaskDetail bundles a task with its recorded parts and photos.
type TaskDetail struct {
	Task   domain.Task        `json:"task"`
	Parts  []domain.TaskPart  `json:"parts"`
	Photos []domain.TaskPhoto `json:"photos"`
}

func (uc *UseCase) Vehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return uc.vehicles.List(ctx)
}

// Technicians lists every technician with their current active-task
// count.
func (uc *UseCase) Technicians(ctx context.Context) ([]repository.TechnicianLoad, error) {
	return uc.stats.WorkloadDistribution(ctx)
}

// TechnicianTasks returns one technician and their active tasks.
func (uc *UseCase) TechnicianTasks(ctx context.Context, technicianID int64) (*domain.Technician, []domain.Task, error) {
	tech, err := uc.techs.GetByID(ctx, technicianID)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		TechnicianID: technicianID,
		ActiveOnly:   true,
	})
	if err != nil {
		return nil, nil, err
	}
	return tech, tasks, nil
}

func (uc *UseCase) Tasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) TaskDetail(ctx context.Context, id int64) (*TaskDetail, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parts, err := uc.tasks.ListParts(ctx, id)
	if err != nil {
		return nil, err
	}
	photos, err := uc.tasks.ListPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: *task, Parts: parts, Photos: photos}, nil
}

func (uc *UseCase) Dashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := uc.stats.TaskCounts(ctx, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	workload, err := uc.stats.WorkloadDistribution(ctx)
	if err != nil {
		return nil, err
	}
	gallery, err := uc.stats.CompletedGallery(ctx, 8)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Counts:   counts,
		Workload: workload,
		Gallery:  gallery,
	}

	// The run report is cosmetic; a cache miss or redis hiccup should
	// not take the dashboard down.
	if uc.runs != nil {
		report, err := uc.runs.LastReport(ctx)
		if err != nil {
			uc.logger.Warn("last run report unavailable", zap.Error(err))
		} else {
			dashboard.LastRun = report
		}
	}

	return dashboard, nil
}
