package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/repository"
)

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository returns a Postgres-backed implementation of VehicleRepository.
func NewVehicleRepository(pool *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{pool: pool}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	const query = `
	SELECT id, vtype, depot, mileage, last_service, interval_tag
	FROM vehicles
	WHERE id = $1
	`
	var v domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.Type,
		&v.Depot,
		&v.Mileage,
		&v.LastService,
		&v.Interval,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	const query = `
	SELECT id, vtype, depot, mileage, last_service, interval_tag
	FROM vehicles
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Type, &v.Depot, &v.Mileage, &v.LastService, &v.Interval); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
