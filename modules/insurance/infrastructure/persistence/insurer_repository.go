package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/insurer"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	insurerFindQuery = `
        SELECT
            i.id,
            i.name,
            i.is_active,
            i.created_by,
            i.created_at,
            i.updated_at
        FROM insurers i`

	insurerInsertQuery = `
        INSERT INTO insurers (name, is_active, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, name, is_active, created_by, created_at, updated_at`
)

type PgInsurerRepository struct{}

func NewInsurerRepository() insurer.Repository {
	return &PgInsurerRepository{}
}

func (g *PgInsurerRepository) GetAll(ctx context.Context) ([]insurer.Insurer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, repo.Join(insurerFindQuery, "ORDER BY i.name"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurer.Insurer
	for rows.Next() {
		var m models.Insurer
		if err := rows.Scan(&m.ID, &m.Name, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		i, err := toDomainInsurer(m)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (g *PgInsurerRepository) GetByID(ctx context.Context, id uuid.UUID) (insurer.Insurer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return insurer.Insurer{}, err
	}

	var m models.Insurer
	err = tx.QueryRow(ctx, repo.Join(insurerFindQuery, "WHERE i.id = $1"), id).
		Scan(&m.ID, &m.Name, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insurer.Insurer{}, insurer.ErrNotFound
		}
		return insurer.Insurer{}, err
	}
	return toDomainInsurer(m)
}

func (g *PgInsurerRepository) Create(ctx context.Context, i insurer.Insurer) (insurer.Insurer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return insurer.Insurer{}, err
	}

	var m models.Insurer
	err = tx.QueryRow(ctx, insurerInsertQuery, i.Name(), i.IsActive(), i.CreatedBy()).
		Scan(&m.ID, &m.Name, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return insurer.Insurer{}, err
	}
	return toDomainInsurer(m)
}
