package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	clientFindQuery = `
        SELECT
            c.id,
            c.name,
            c.email,
            c.phone,
            c.is_active,
            c.created_by,
            c.created_at,
            c.updated_at
        FROM clients c`

	clientCountQuery = `SELECT COUNT(c.id) FROM clients c`

	clientInsertQuery = `
        INSERT INTO clients (name, email, phone, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, email, phone, is_active, created_by, created_at, updated_at`

	clientExistsQuery = `SELECT EXISTS (SELECT 1 FROM clients c WHERE c.id = $1 AND c.is_active)`
)

type PgClientRepository struct{}

func NewClientRepository() client.Repository {
	return &PgClientRepository{}
}

func (g *PgClientRepository) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	if params == nil {
		params = &client.FindParams{}
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
		clientFindQuery,
		"ORDER BY c.name",
		repo.FormatLimitOffset(limit, offset),
	)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanClients(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, clientCountQuery).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (g *PgClientRepository) GetAllActive(ctx context.Context) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, repo.Join(clientFindQuery, "WHERE c.is_active ORDER BY c.name"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClients(rows)
}

func (g *PgClientRepository) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	var m models.Client
	err = tx.QueryRow(ctx, repo.Join(clientFindQuery, "WHERE c.id = $1"), id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, err
	}
	return toDomainClient(m)
}

func (g *PgClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, clientExistsQuery, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (g *PgClientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	var m models.Client
	err = tx.QueryRow(
		ctx,
		clientInsertQuery,
		c.Name(),
		c.Email(),
		c.Phone(),
		c.IsActive(),
		c.CreatedBy(),
	).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return client.Client{}, err
	}
	return toDomainClient(m)
}

func scanClients(rows pgx.Rows) ([]client.Client, error) {
	var out []client.Client
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		c, err := toDomainClient(m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
