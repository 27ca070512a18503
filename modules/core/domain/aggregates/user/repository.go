package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
}

// TokenRepository binds opaque API tokens to users.
type TokenRepository interface {
	GetUserByToken(ctx context.Context, token string) (User, error)
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}
