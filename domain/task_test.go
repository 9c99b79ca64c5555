package domain

import (
	"testing"
	"time"
)

func TestTaskStatusPredicates(t *testing.T) {
	techID := int64(2)

	tests := []struct {
		name          string
		task          *Task
		wantCompleted bool
		wantActive    bool
		wantAssigned  bool
	}{
		{"nil task", nil, false, false, false},
		{"pending unassigned", &Task{Status: StatusPending}, false, true, false},
		{"pending assigned", &Task{Status: StatusPending, TechnicianID: &techID}, false, true, true},
		{"completed", &Task{Status: StatusCompleted, TechnicianID: &techID}, true, false, true},
		{"custom status counts as active", &Task{Status: "needs-review"}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsCompleted(); got != tt.wantCompleted {
				t.Errorf("IsCompleted() = %v, want %v", got, tt.wantCompleted)
			}
			if got := tt.task.IsActive(); got != tt.wantActive {
				t.Errorf("IsActive() = %v, want %v", got, tt.wantActive)
			}
			if got := tt.task.IsAssigned(); got != tt.wantAssigned {
				t.Errorf("IsAssigned() = %v, want %v", got, tt.wantAssigned)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"strips clock time",
			time.Date(2025, 8, 20, 14, 30, 5, 999, time.UTC),
			time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			"normalizes to utc",
			time.Date(2025, 8, 21, 3, 0, 0, 0, loc),
			time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			"midnight stays put",
			time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOnly(tt.in); !got.Equal(tt.want) {
				t.Errorf("DateOnly(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVehicleNextDue(t *testing.T) {
	calendar := DefaultIntervalCalendar()

	tests := []struct {
		name    string
		vehicle Vehicle
		want    time.Time
	}{
		{
			"weekly",
			Vehicle{LastService: time.Date(2025, 8, 1, 9, 15, 0, 0, time.UTC), Interval: IntervalWeekly},
			time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			"bi-weekly",
			Vehicle{LastService: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Interval: IntervalBiWeekly},
			time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"unknown interval uses default",
			Vehicle{LastService: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Interval: "Quarterly"},
			time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vehicle.NextDue(calendar); !got.Equal(tt.want) {
				t.Errorf("NextDue() = %v, want %v", got, tt.want)
			}
		})
	}
}
