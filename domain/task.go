package domain

import "time"

// Task statuses. Completion accepts arbitrary caller-supplied values on
// purpose (the transition table is not enforced), so these are defaults
// rather than an exhaustive enumeration.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Photo kinds attached during task completion.
const (
	PhotoKindBefore = "before"
	PhotoKindAfter  = "after"
)

// Task represents a scheduled maintenance job for a single vehicle.
// The serial ID doubles as creation order, which the assignment engine
// relies on for deterministic processing.
type Task struct {
	ID            int64      `json:"id"`
	VehicleID     string     `json:"vehicle_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	TechnicianID  *int64     `json:"technician_id,omitempty"`
	Depot         string     `json:"depot"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Signature     string     `json:"signature,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// IsActive reports whether the task still counts toward a technician's
// workload.
func (t *Task) IsActive() bool {
	return t != nil && t.Status != StatusCompleted
}

func (t *Task) IsAssigned() bool {
	return t != nil && t.TechnicianID != nil
}

// TaskPart records one consumed part for a completed task. The full part
// set is replaced wholesale on every completion submission.
type TaskPart struct {
	ID       int64  `json:"id"`
	TaskID   int64  `json:"task_id"`
	PartName string `json:"part_name"`
	Qty      int    `json:"qty"`
}

// TaskPhoto references a stored evidence photo. Photos are append-only;
// completing a task again adds to the gallery instead of replacing it.
type TaskPhoto struct {
	ID       int64  `json:"id"`
	TaskID   int64  `json:"task_id"`
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
}

// DateOnly truncates a timestamp to its calendar day in UTC. Scheduled
// dates are compared at day granularity everywhere in the engine.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
