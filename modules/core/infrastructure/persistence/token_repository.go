package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/core/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
)

const (
	tokenUserQuery = `
        SELECT
            u.id,
            u.email,
            u.full_name,
            u.role,
            u.is_active,
            u.created_at,
            u.updated_at
        FROM api_tokens t
        JOIN users u ON u.id = t.user_id
        WHERE t.token = $1 AND t.expires_at > now()`

	tokenInsertQuery = `
        INSERT INTO api_tokens (token, user_id, expires_at)
        VALUES ($1, $2, $3)`
)

type PgTokenRepository struct{}

func NewTokenRepository() user.TokenRepository {
	return &PgTokenRepository{}
}

func (g *PgTokenRepository) GetUserByToken(ctx context.Context, token string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	var m models.User
	err = tx.QueryRow(ctx, tokenUserQuery, token).
		Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrTokenInvalid
		}
		return user.User{}, err
	}

	return toDomainUser(m)
}

func (g *PgTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, tokenInsertQuery, token, userID, expiresAt)
	return err
}
