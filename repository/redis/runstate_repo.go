package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/repository"
)

type runStateRepository struct {
	client  *redislib.Client
	lockKey string
	repKey  string
}

// NewRunStateRepository creates a Redis-backed run-state repository. The
// run lock is advisory: it keeps a periodic and a manual trigger from
// starting overlapping scheduling batches.
func NewRunStateRepository(client *redislib.Client) repository.RunStateRepository {
	return &runStateRepository{
		client:  client,
		lockKey: "scheduling:run_lock",
		repKey:  "scheduling:last_report",
	}
}

func (r *runStateRepository) AcquireRunLock(ctx context.Context, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.client.SetNX(ctx, r.lockKey, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (r *runStateRepository) ReleaseRunLock(ctx context.Context) error {
	return r.client.Del(ctx, r.lockKey).Err()
}

func (r *runStateRepository) SaveReport(ctx context.Context, report domain.RunReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.repKey, payload, 0).Err()
}

func (r *runStateRepository) LastReport(ctx context.Context) (*domain.RunReport, error) {
	result, err := r.client.Get(ctx, r.repKey).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.RunReport
	if err := json.Unmarshal([]byte(result), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
