package scheduling

import (
	"context"
	"testing"

	"github.com/fleetgo/maintenance/domain"
)

func TestGeneratorHorizonBoundaries(t *testing.T) {
	today := day(30)

	tests := []struct {
		name        string
		lastService int // day offset
		interval    string
		wantTask    bool
	}{
		{"due exactly today", 23, domain.IntervalWeekly, true},
		{"due one day before today", 22, domain.IntervalWeekly, false},
		{"due at horizon end", 53, domain.IntervalWeekly, true},
		{"due one day past horizon end", 54, domain.IntervalWeekly, false},
		{"far overdue produces nothing", 0, domain.IntervalWeekly, false},
		{"unknown interval defaults to monthly", 10, "Quarterly", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fleet := newFakeFleet()
			fleet.vehicles = []domain.Vehicle{{
				ID:          "TRK-001",
				Depot:       "Depot A",
				LastService: day(tt.lastService),
				Interval:    tt.interval,
			}}

			gen := NewGenerator(fleet, fleet, nil, 30, nil)
			result, err := gen.Run(context.Background(), today)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := len(result.Created); (got == 1) != tt.wantTask {
				t.Errorf("created %d tasks, wantTask=%v", got, tt.wantTask)
			}
		})
	}
}

func TestGeneratorEmittedTaskFields(t *testing.T) {
	fleet := newFakeFleet()
	fleet.vehicles = []domain.Vehicle{{
		ID:          "VAN-205",
		Depot:       "Depot B",
		LastService: day(0),
		Interval:    domain.IntervalBiWeekly,
	}}

	gen := NewGenerator(fleet, fleet, nil, 30, nil)
	result, err := gen.Run(context.Background(), day(14))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected 1 task, got %d", len(result.Created))
	}

	task := result.Created[0]
	if task.VehicleID != "VAN-205" {
		t.Errorf("VehicleID = %s, want VAN-205", task.VehicleID)
	}
	if !task.ScheduledDate.Equal(day(14)) {
		t.Errorf("ScheduledDate = %v, want %v", task.ScheduledDate, day(14))
	}
	if task.Depot != "Depot B" {
		t.Errorf("Depot = %s, want Depot B", task.Depot)
	}
	if task.Status != domain.StatusPending {
		t.Errorf("Status = %s, want pending", task.Status)
	}
	if task.TechnicianID != nil {
		t.Errorf("new task must be unassigned, got technician %d", *task.TechnicianID)
	}
}

func TestGeneratorIdempotence(t *testing.T) {
	fleet := newFakeFleet()
	fleet.vehicles = []domain.Vehicle{
		{ID: "TRK-001", Depot: "Depot A", LastService: day(0), Interval: domain.IntervalWeekly},
		{ID: "CAR-078", Depot: "Depot B", LastService: day(3), Interval: domain.IntervalWeekly},
	}

	gen := NewGenerator(fleet, fleet, nil, 30, nil)

	first, err := gen.Run(context.Background(), day(7))
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if len(first.Created) != 2 {
		t.Fatalf("first run created %d tasks, want 2", len(first.Created))
	}

	second, err := gen.Run(context.Background(), day(7))
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if len(second.Created) != 0 {
		t.Errorf("second run created %d tasks, want 0", len(second.Created))
	}
	if len(fleet.tasks) != 2 {
		t.Errorf("store holds %d tasks, want 2", len(fleet.tasks))
	}
}

func TestGeneratorDuplicateSuppressionIgnoresStatus(t *testing.T) {
	for _, status := range []string{domain.StatusPending, domain.StatusCompleted} {
		t.Run(status, func(t *testing.T) {
			fleet := newFakeFleet()
			fleet.vehicles = []domain.Vehicle{{
				ID:          "TRK-001",
				Depot:       "Depot A",
				LastService: day(0),
				Interval:    domain.IntervalWeekly,
			}}
			fleet.seedTask("TRK-001", day(7), "Depot A", status, nil)

			gen := NewGenerator(fleet, fleet, nil, 30, nil)
			result, err := gen.Run(context.Background(), day(7))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if len(result.Created) != 0 {
				t.Errorf("created %d tasks despite existing %s task", len(result.Created), status)
			}
		})
	}
}

func TestGeneratorCopiesCurrentDepot(t *testing.T) {
	fleet := newFakeFleet()
	fleet.vehicles = []domain.Vehicle{{
		ID:          "VAN-112",
		Depot:       "Field Office",
		LastService: day(0),
		Interval:    domain.IntervalWeekly,
	}}

	gen := NewGenerator(fleet, fleet, nil, 30, nil)
	result, err := gen.Run(context.Background(), day(7))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0].Depot != "Field Office" {
		t.Fatalf("task depot not copied from vehicle: %+v", result.Created)
	}
}
