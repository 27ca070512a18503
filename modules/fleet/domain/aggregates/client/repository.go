package client

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Client, int64, error)
	GetAllActive(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, c Client) (Client, error)
}
