package scheduling

import "context"

// WorkloadTracker computes technician workloads. Counts always come
// straight from the store, never cached: assignments are persisted one
// at a time, so a fresh count already includes everything assigned
// earlier in the same batch.
type WorkloadTracker struct {
	counts ActiveTaskCounter
}

func NewWorkloadTracker(counts ActiveTaskCounter) *WorkloadTracker {
	return &WorkloadTracker{counts: counts}
}

// ActiveTaskCount returns the number of non-completed tasks currently
// referencing the technician.
func (w *WorkloadTracker) ActiveTaskCount(ctx context.Context, technicianID int64) (int, error) {
	return w.counts.CountActiveByTechnician(ctx, technicianID)
}
