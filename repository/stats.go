package repository

import (
	"context"
	"time"

	"github.com/fleetgo/maintenance/domain"
)

// TaskCounts aggregates the dashboard headline numbers.
type TaskCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// TechnicianLoad pairs a technician with their active-task count.
type TechnicianLoad struct {
	Technician domain.Technician `json:"technician"`
	Active     int               `json:"active"`
}

// GalleryEntry is one completed-task after-photo for the dashboard.
type GalleryEntry struct {
	TaskID    int64  `json:"task_id"`
	VehicleID string `json:"vehicle_id"`
	Filename  string `json:"filename"`
}

type StatsRepository interface {
	TaskCounts(ctx context.Context, today time.Time) (TaskCounts, error)
	// WorkloadDistribution lists every technician with their active-task
	// count, including technicians with none.
	WorkloadDistribution(ctx context.Context) ([]TechnicianLoad, error)
	// CompletedGallery returns the most recent after-photos of completed
	// tasks, newest first.
	CompletedGallery(ctx context.Context, limit int) ([]GalleryEntry, error)
}
