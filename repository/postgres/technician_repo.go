package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/repository"
)

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository returns a Postgres-backed implementation of TechnicianRepository.
func NewTechnicianRepository(pool *pgxpool.Pool) repository.TechnicianRepository {
	return &technicianRepository{pool: pool}
}

func (r *technicianRepository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	const query = `SELECT id, name, depot FROM technicians WHERE id = $1`
	var tech domain.Technician
	if err := r.pool.QueryRow(ctx, query, id).Scan(&tech.ID, &tech.Name, &tech.Depot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, err
	}
	return &tech, nil
}

func (r *technicianRepository) List(ctx context.Context) ([]domain.Technician, error) {
	const query = `SELECT id, name, depot FROM technicians ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var techs []domain.Technician
	for rows.Next() {
		var tech domain.Technician
		if err := rows.Scan(&tech.ID, &tech.Name, &tech.Depot); err != nil {
			return nil, err
		}
		techs = append(techs, tech)
	}
	return techs, rows.Err()
}
