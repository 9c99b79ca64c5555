package repository

import (
	"context"

	"github.com/fleetgo/maintenance/domain"
)

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// List returns all vehicles in ascending id order.
	List(ctx context.Context) ([]domain.Vehicle, error)
}
