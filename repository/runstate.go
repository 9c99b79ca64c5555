package repository

import (
	"context"
	"time"

	"github.com/fleetgo/maintenance/domain"
)

// RunStateRepository coordinates scheduling runs across triggers. The
// engine assumes a single batch invoker at a time; the lock makes that
// assumption explicit instead of relying on caller discipline.
type RunStateRepository interface {
	// AcquireRunLock takes the advisory run lock. It returns false when
	// another run currently holds it.
	AcquireRunLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseRunLock(ctx context.Context) error
	SaveReport(ctx context.Context, report domain.RunReport) error
	// LastReport returns the most recent run report, or nil when no run
	// has happened yet.
	LastReport(ctx context.Context) (*domain.RunReport, error)
}
