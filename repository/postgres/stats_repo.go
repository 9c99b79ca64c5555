package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/repository"
)

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a Postgres-backed implementation of StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) TaskCounts(ctx context.Context, today time.Time) (repository.TaskCounts, error) {
	const query = `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'completed'),
		COUNT(*) FILTER (WHERE status <> 'completed' AND scheduled_date < $1)
	FROM tasks
	`
	var counts repository.TaskCounts
	err := r.pool.QueryRow(ctx, query, domain.DateOnly(today)).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Completed,
		&counts.Overdue,
	)
	return counts, err
}

func (r *statsRepository) WorkloadDistribution(ctx context.Context) ([]repository.TechnicianLoad, error) {
	const query = `
	SELECT t.id, t.name, t.depot, COUNT(tk.id)
	FROM technicians t
	LEFT JOIN tasks tk ON tk.assigned_tech_id = t.id AND tk.status <> 'completed'
	GROUP BY t.id, t.name, t.depot
	ORDER BY t.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []repository.TechnicianLoad
	for rows.Next() {
		var load repository.TechnicianLoad
		if err := rows.Scan(&load.Technician.ID, &load.Technician.Name, &load.Technician.Depot, &load.Active); err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	return loads, rows.Err()
}

func (r *statsRepository) CompletedGallery(ctx context.Context, limit int) ([]repository.GalleryEntry, error) {
	if limit <= 0 {
		limit = 8
	}
	const query = `
	SELECT t.id, v.id, tp.filename
	FROM tasks t
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN task_photos tp ON tp.task_id = t.id AND tp.kind = 'after'
	WHERE t.status = 'completed'
	ORDER BY t.completed_at DESC
	LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []repository.GalleryEntry
	for rows.Next() {
		var entry repository.GalleryEntry
		if err := rows.Scan(&entry.TaskID, &entry.VehicleID, &entry.Filename); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
