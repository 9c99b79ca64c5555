package repository

import (
	"context"
	"time"

	"github.com/fleetgo/maintenance/domain"
)

// TaskFilter narrows task listings. Zero values mean "no constraint".
type TaskFilter struct {
	Status       string
	Depot        string
	TechnicianID int64
	Unassigned   bool
	ActiveOnly   bool
	Limit        int
	Offset       int
}

// TaskCompletion carries everything applied atomically when a task is
// completed: the status mutation, the replacement part set, and any
// newly accepted photos.
type TaskCompletion struct {
	Status      string
	CompletedAt time.Time
	Signature   string
	Parts       []domain.TaskPart
	Photos      []domain.TaskPhoto
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	// ListUnassigned returns active unassigned tasks in ascending id
	// order, the processing order the assignment engine requires.
	ListUnassigned(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// ExistsForVehicleOn reports whether any task, regardless of status,
	// already targets the given vehicle on the given date.
	ExistsForVehicleOn(ctx context.Context, vehicleID string, date time.Time) (bool, error)
	// AssignTechnician sets the technician reference only; status is
	// untouched.
	AssignTechnician(ctx context.Context, taskID, technicianID int64) error
	// CountActiveByTechnician counts tasks referencing the technician
	// whose status is not completed.
	CountActiveByTechnician(ctx context.Context, technicianID int64) (int, error)
	// Complete applies the completion mutation, replaces the part set and
	// appends photos in a single transaction.
	Complete(ctx context.Context, id int64, completion TaskCompletion) (*domain.Task, error)
	ListParts(ctx context.Context, taskID int64) ([]domain.TaskPart, error)
	ListPhotos(ctx context.Context, taskID int64) ([]domain.TaskPhoto, error)
}
