package reference

import (
	"context"

	"github.com/google/uuid"
)

type UpdateValues struct {
	Name      string
	IsDefault bool
	IsActive  bool
}

type Repository interface {
	GetAllByKind(ctx context.Context, kind Kind) ([]Value, error)
	GetAllActiveByKind(ctx context.Context, kind Kind) ([]Value, error)
	GetByID(ctx context.Context, id uuid.UUID) (Value, error)
	Exists(ctx context.Context, kind Kind, id uuid.UUID) (bool, error)
	FirstActiveDefault(ctx context.Context, kind Kind) (Value, error)
	Create(ctx context.Context, v Value) (Value, error)
	Update(ctx context.Context, id uuid.UUID, values UpdateValues) (Value, error)
}
