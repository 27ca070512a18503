package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/core/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.full_name,
            u.role,
            u.is_active,
            u.created_at,
            u.updated_at
        FROM users u`

	userCountQuery = `SELECT COUNT(u.id) FROM users u`

	userInsertQuery = `
        INSERT INTO users (email, full_name, role, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, full_name, role, is_active, created_at, updated_at`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	if params == nil {
		params = &user.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := repo.Join(
		userFindQuery,
		"ORDER BY u.created_at DESC",
		repo.FormatLimitOffset(limit, offset),
	)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, userCountQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return g.getOne(ctx, repo.Join(userFindQuery, "WHERE u.id = $1"), id)
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return g.getOne(ctx, repo.Join(userFindQuery, "WHERE u.email = $1"), strings.ToLower(strings.TrimSpace(email)))
}

func (g *PgUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	var m models.User
	err = tx.QueryRow(
		ctx,
		userInsertQuery,
		u.Email(),
		u.FullName(),
		string(u.Role()),
		u.IsActive(),
	).Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, gerrors.Wrap(err, "failed to create user")
	}

	return toDomainUser(m)
}

func (g *PgUserRepository) getOne(ctx context.Context, query string, args ...any) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	var m models.User
	err = tx.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return toDomainUser(m)
}

func scanUsers(rows pgx.Rows) ([]user.User, error) {
	var out []user.User
	for rows.Next() {
		var m models.User
		if err := rows.Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		u, err := toDomainUser(m)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
