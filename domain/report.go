package domain

import "time"

// RunReport summarizes one scheduling batch (generation followed by
// assignment). Capacity exhaustion is reported here as a count, never
// raised as an error.
type RunReport struct {
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Generated   int       `json:"generated"`
	Assigned    int       `json:"assigned"`
	Unassigned  int       `json:"unassigned"`
	Trigger     string    `json:"trigger"`
	HorizonDays int       `json:"horizon_days"`
}

// Run trigger labels.
const (
	TriggerManual   = "manual"
	TriggerPeriodic = "periodic"
)
