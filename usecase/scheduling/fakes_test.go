package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/fleetgo/maintenance/domain"
)

// fakeFleet implements every scheduling port against in-memory slices so
// generator and assigner can be exercised together.
type fakeFleet struct {
	vehicles []domain.Vehicle
	techs    []domain.Technician

	nextTaskID int64
	tasks      map[int64]*domain.Task
}

func newFakeFleet() *fakeFleet {
	return &fakeFleet{tasks: make(map[int64]*domain.Task)}
}

func (f *fakeFleet) List(ctx context.Context) ([]domain.Vehicle, error) {
	return f.vehicles, nil
}

func (f *fakeFleet) ExistsForVehicleOn(ctx context.Context, vehicleID string, date time.Time) (bool, error) {
	day := domain.DateOnly(date)
	for _, task := range f.tasks {
		if task.VehicleID == vehicleID && task.ScheduledDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFleet) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	f.nextTaskID++
	task.ID = f.nextTaskID
	task.CreatedAt = time.Now()
	stored := *task
	f.tasks[task.ID] = &stored
	return task, nil
}

func (f *fakeFleet) ListUnassigned(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.TechnicianID == nil && task.Status != domain.StatusCompleted {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFleet) AssignTechnician(ctx context.Context, taskID, technicianID int64) error {
	task, ok := f.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	id := technicianID
	task.TechnicianID = &id
	return nil
}

func (f *fakeFleet) CountActiveByTechnician(ctx context.Context, technicianID int64) (int, error) {
	count := 0
	for _, task := range f.tasks {
		if task.TechnicianID != nil && *task.TechnicianID == technicianID && task.Status != domain.StatusCompleted {
			count++
		}
	}
	return count, nil
}

// techLister satisfies TechnicianLister from the fleet's slice.
func (f *fakeFleet) TechList(ctx context.Context) ([]domain.Technician, error) {
	return f.techs, nil
}

// technicianLister adapts fakeFleet.TechList to the TechnicianLister port.
type technicianLister struct {
	fleet *fakeFleet
}

func (l technicianLister) List(ctx context.Context) ([]domain.Technician, error) {
	return l.fleet.TechList(ctx)
}

// seedTask inserts a task directly, bypassing the generator.
func (f *fakeFleet) seedTask(vehicleID string, date time.Time, depot, status string, technicianID *int64) *domain.Task {
	f.nextTaskID++
	task := &domain.Task{
		ID:            f.nextTaskID,
		VehicleID:     vehicleID,
		ScheduledDate: domain.DateOnly(date),
		TechnicianID:  technicianID,
		Depot:         depot,
		Status:        status,
		CreatedAt:     time.Now(),
	}
	f.tasks[task.ID] = task
	return task
}

func day(offset int) time.Time {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func int64Ptr(v int64) *int64 { return &v }
