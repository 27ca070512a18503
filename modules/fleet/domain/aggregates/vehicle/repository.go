package vehicle

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit    int
	Offset   int
	ClientID uuid.UUID
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Vehicle, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Vehicle, error)
	// ExistingRegistrationNos returns the registration numbers already in
	// the store, upper-cased, for duplicate pre-checks.
	ExistingRegistrationNos(ctx context.Context) (map[string]struct{}, error)
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
}
