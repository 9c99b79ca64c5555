package repository

import (
	"context"

	"github.com/fleetgo/maintenance/domain"
)

type TechnicianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
	// List returns all technicians in ascending id order. The assignment
	// engine's tie-break depends on this order being stable.
	List(ctx context.Context) ([]domain.Technician, error)
}
