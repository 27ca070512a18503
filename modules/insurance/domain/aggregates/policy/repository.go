package policy

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit     int
	Offset    int
	VehicleID uuid.UUID
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Policy, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Policy, error)
	Create(ctx context.Context, p Policy) (Policy, error)
}
