package scheduling

import (
	"context"
	"time"

	"github.com/fleetgo/maintenance/domain"
)

// VehicleLister supplies the fleet the generator scans. Vehicles must be
// returned in a stable order.
type VehicleLister interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
}

// TechnicianLister supplies assignment candidates. The engine breaks
// workload ties by input order, so the listing order must be stable.
type TechnicianLister interface {
	List(ctx context.Context) ([]domain.Technician, error)
}

// GeneratorTaskStore is the task access the generator needs: duplicate
// detection plus persistence of newly due tasks.
type GeneratorTaskStore interface {
	ExistsForVehicleOn(ctx context.Context, vehicleID string, date time.Time) (bool, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
}

// AssignmentTaskStore is the task access the assignment engine needs.
type AssignmentTaskStore interface {
	ListUnassigned(ctx context.Context) ([]domain.Task, error)
	AssignTechnician(ctx context.Context, taskID, technicianID int64) error
}

// ActiveTaskCounter reports a technician's current active-task count
// straight from the store.
type ActiveTaskCounter interface {
	CountActiveByTechnician(ctx context.Context, technicianID int64) (int, error)
}
