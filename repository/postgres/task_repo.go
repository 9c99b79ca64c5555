package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
	SELECT id, vehicle_id, scheduled_date, assigned_tech_id, depot, status, created_at, completed_at, signature
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT id, vehicle_id, scheduled_date, assigned_tech_id, depot, status, created_at, completed_at, signature
	FROM tasks
	WHERE ($1 = '' OR status = $1)
	  AND ($2 = '' OR depot = $2)
	  AND ($3 = 0 OR assigned_tech_id = $3)
	  AND (NOT $4 OR assigned_tech_id IS NULL)
	  AND (NOT $5 OR status <> 'completed')
	ORDER BY scheduled_date DESC, id DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.Status,
		filter.Depot,
		filter.TechnicianID,
		filter.Unassigned,
		filter.ActiveOnly,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListUnassigned(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT id, vehicle_id, scheduled_date, assigned_tech_id, depot, status, created_at, completed_at, signature
	FROM tasks
	WHERE assigned_tech_id IS NULL AND status <> 'completed'
	ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}

	const query = `
	INSERT INTO tasks (vehicle_id, scheduled_date, assigned_tech_id, depot, status, signature)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at
	`
	var tech interface{}
	if task.TechnicianID != nil {
		tech = *task.TechnicianID
	}

	if err := r.pool.QueryRow(ctx, query,
		task.VehicleID,
		domain.DateOnly(task.ScheduledDate),
		tech,
		task.Depot,
		task.Status,
		task.Signature,
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) ExistsForVehicleOn(ctx context.Context, vehicleID string, date time.Time) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM tasks WHERE vehicle_id = $1 AND scheduled_date = $2
	)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, vehicleID, domain.DateOnly(date)).Scan(&exists)
	return exists, err
}

func (r *taskRepository) AssignTechnician(ctx context.Context, taskID, technicianID int64) error {
	const query = `UPDATE tasks SET assigned_tech_id = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, taskID, technicianID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) CountActiveByTechnician(ctx context.Context, technicianID int64) (int, error) {
	const query = `
	SELECT COUNT(*) FROM tasks WHERE assigned_tech_id = $1 AND status <> 'completed'
	`
	var count int
	err := r.pool.QueryRow(ctx, query, technicianID).Scan(&count)
	return count, err
}

// Complete runs the whole completion mutation in one transaction so a
// failure cannot leave the task updated with a half-replaced part set.
func (r *taskRepository) Complete(ctx context.Context, id int64, completion repository.TaskCompletion) (*domain.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const updateQuery = `
	UPDATE tasks
	SET status = $2,
		completed_at = $3,
		signature = $4
	WHERE id = $1
	RETURNING id, vehicle_id, scheduled_date, assigned_tech_id, depot, status, created_at, completed_at, signature
	`
	task, err := scanTask(tx.QueryRow(ctx, updateQuery, id, completion.Status, completion.CompletedAt, completion.Signature))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM task_parts WHERE task_id = $1`, id); err != nil {
		return nil, err
	}
	for _, part := range completion.Parts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO task_parts (task_id, part_name, qty) VALUES ($1, $2, $3)`,
			id, part.PartName, part.Qty,
		); err != nil {
			return nil, err
		}
	}

	for _, photo := range completion.Photos {
		if _, err := tx.Exec(ctx,
			`INSERT INTO task_photos (task_id, kind, filename) VALUES ($1, $2, $3)`,
			id, photo.Kind, photo.Filename,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) ListParts(ctx context.Context, taskID int64) ([]domain.TaskPart, error) {
	const query = `
	SELECT id, task_id, part_name, qty FROM task_parts WHERE task_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.TaskPart
	for rows.Next() {
		var part domain.TaskPart
		if err := rows.Scan(&part.ID, &part.TaskID, &part.PartName, &part.Qty); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

func (r *taskRepository) ListPhotos(ctx context.Context, taskID int64) ([]domain.TaskPhoto, error) {
	const query = `
	SELECT id, task_id, kind, filename FROM task_photos WHERE task_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.TaskPhoto
	for rows.Next() {
		var photo domain.TaskPhoto
		if err := rows.Scan(&photo.ID, &photo.TaskID, &photo.Kind, &photo.Filename); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		tech      *int64
		completed *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.VehicleID,
		&task.ScheduledDate,
		&tech,
		&task.Depot,
		&task.Status,
		&task.CreatedAt,
		&completed,
		&task.Signature,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.TechnicianID = tech
	task.CompletedAt = completed
	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
