package scheduling

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
)

// DefaultCapacity is the maximum number of active tasks a technician may
// hold before being excluded from assignment.
const DefaultCapacity = 3

// Assignment pairs a task with the technician it was given to.
type Assignment struct {
	TaskID       int64 `json:"task_id"`
	TechnicianID int64 `json:"technician_id"`
}

// AssignResult reports one assignment run. Skipped counts tasks left
// unassigned because every technician was at capacity; that is a normal
// outcome, not an error.
type AssignResult struct {
	Assigned []Assignment
	Skipped  int
}

// Assigner distributes unassigned tasks across technicians. Policy, per
// task in ascending task-id order: technicians from the task's depot
// with spare capacity are preferred, any technician with spare capacity
// is the fallback, and within the chosen pool the lowest active count
// wins with ties broken by listing order. Assignments apply sequentially
// so each one is visible to the capacity check for the next task.
type Assigner struct {
	tasks    AssignmentTaskStore
	techs    TechnicianLister
	workload *WorkloadTracker
	capacity int
	logger   *zap.Logger
}

func NewAssigner(tasks AssignmentTaskStore, techs TechnicianLister, workload *WorkloadTracker, capacity int, logger *zap.Logger) *Assigner {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{
		tasks:    tasks,
		techs:    techs,
		workload: workload,
		capacity: capacity,
		logger:   logger,
	}
}

type candidate struct {
	tech  domain.Technician
	count int
}

// Run assigns every currently unassigned active task it can and reports
// the rest as skipped.
func (a *Assigner) Run(ctx context.Context) (AssignResult, error) {
	tasks, err := a.tasks.ListUnassigned(ctx)
	if err != nil {
		return AssignResult{}, err
	}
	techs, err := a.techs.List(ctx)
	if err != nil {
		return AssignResult{}, err
	}

	var result AssignResult
	for _, task := range tasks {
		chosen, err := a.pick(ctx, task, techs)
		if err != nil {
			return result, err
		}
		if chosen == nil {
			result.Skipped++
			a.logger.Info("no capacity for task, left unassigned",
				zap.Int64("task_id", task.ID),
				zap.String("depot", task.Depot),
			)
			continue
		}

		if err := a.tasks.AssignTechnician(ctx, task.ID, chosen.ID); err != nil {
			return result, err
		}
		result.Assigned = append(result.Assigned, Assignment{
			TaskID:       task.ID,
			TechnicianID: chosen.ID,
		})
	}

	a.logger.Info("auto-assignment finished",
		zap.Int("assigned", len(result.Assigned)),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// pick selects the technician for one task, or nil when every pool is
// exhausted. Counts are re-read from the store per decision; each
// assignment is persisted before the next task is examined, so every
// earlier assignment in the run counts exactly once here.
func (a *Assigner) pick(ctx context.Context, task domain.Task, techs []domain.Technician) (*domain.Technician, error) {
	var sameDepot, anyDepot []candidate
	for _, tech := range techs {
		count, err := a.workload.ActiveTaskCount(ctx, tech.ID)
		if err != nil {
			return nil, err
		}
		if count >= a.capacity {
			continue
		}
		c := candidate{tech: tech, count: count}
		anyDepot = append(anyDepot, c)
		if tech.Depot == task.Depot {
			sameDepot = append(sameDepot, c)
		}
	}

	pool := sameDepot
	if len(pool) == 0 {
		pool = anyDepot
	}
	if len(pool) == 0 {
		return nil, nil
	}

	best := pool[0]
	for _, c := range pool[1:] {
		// Strict less-than keeps the first technician on ties.
		if c.count < best.count {
			best = c
		}
	}
	return &best.tech, nil
}
