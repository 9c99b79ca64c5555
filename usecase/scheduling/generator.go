package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
)

// DefaultHorizonDays is the forward-looking window scanned for due
// maintenance when no override is configured.
const DefaultHorizonDays = 30

// Generator derives due maintenance tasks from each vehicle's service
// interval. Generation is idempotent: a (vehicle, due date) pair that
// already has a task, whatever its status, is never duplicated.
type Generator struct {
	vehicles VehicleLister
	tasks    GeneratorTaskStore
	calendar domain.IntervalCalendar
	horizon  int
	logger   *zap.Logger
}

// GenerateResult reports one generator run.
type GenerateResult struct {
	Created []domain.Task
}

func NewGenerator(vehicles VehicleLister, tasks GeneratorTaskStore, calendar domain.IntervalCalendar, horizonDays int, logger *zap.Logger) *Generator {
	if calendar == nil {
		calendar = domain.DefaultIntervalCalendar()
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		vehicles: vehicles,
		tasks:    tasks,
		calendar: calendar,
		horizon:  horizonDays,
		logger:   logger,
	}
}

// Run scans every vehicle and persists one pending, unassigned task per
// vehicle whose next due date falls inside [today, today+horizon], both
// ends inclusive. Each created task is persisted before the next vehicle
// is examined, so duplicate detection on a rerun sees the full output of
// this run.
func (g *Generator) Run(ctx context.Context, today time.Time) (GenerateResult, error) {
	today = domain.DateOnly(today)
	horizonEnd := today.AddDate(0, 0, g.horizon)

	vehicles, err := g.vehicles.List(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	var result GenerateResult
	for _, vehicle := range vehicles {
		nextDue := vehicle.NextDue(g.calendar)

		if nextDue.Before(today) {
			// Stale vehicle record: the due date already passed and no
			// task is generated retroactively. Flagged rather than fixed.
			g.logger.Warn("vehicle overdue beyond horizon start, no task generated",
				zap.String("vehicle_id", vehicle.ID),
				zap.Time("next_due", nextDue),
			)
			continue
		}
		if nextDue.After(horizonEnd) {
			continue
		}

		exists, err := g.tasks.ExistsForVehicleOn(ctx, vehicle.ID, nextDue)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}

		task := &domain.Task{
			VehicleID:     vehicle.ID,
			ScheduledDate: nextDue,
			Depot:         vehicle.Depot,
			Status:        domain.StatusPending,
		}
		created, err := g.tasks.Create(ctx, task)
		if err != nil {
			return result, err
		}
		result.Created = append(result.Created, *created)
	}

	g.logger.Info("task generation finished",
		zap.Int("vehicles", len(vehicles)),
		zap.Int("created", len(result.Created)),
		zap.Int("horizon_days", g.horizon),
	)
	return result, nil
}

// HorizonDays returns the configured scan window.
func (g *Generator) HorizonDays() int {
	return g.horizon
}
