package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	referenceFindQuery = `
        SELECT
            r.id,
            r.kind,
            r.name,
            r.is_default,
            r.is_active,
            r.created_by,
            r.created_at,
            r.updated_at
        FROM reference_values r`

	referenceInsertQuery = `
        INSERT INTO reference_values (kind, name, is_default, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, kind, name, is_default, is_active, created_by, created_at, updated_at`

	referenceUpdateQuery = `
        UPDATE reference_values
        SET name = $2, is_default = $3, is_active = $4, updated_at = now()
        WHERE id = $1
        RETURNING id, kind, name, is_default, is_active, created_by, created_at, updated_at`

	referenceExistsQuery = `SELECT EXISTS (SELECT 1 FROM reference_values r WHERE r.kind = $1 AND r.id = $2 AND r.is_active)`
)

type PgReferenceRepository struct{}

func NewReferenceRepository() reference.Repository {
	return &PgReferenceRepository{}
}

func (g *PgReferenceRepository) GetAllByKind(ctx context.Context, kind reference.Kind) ([]reference.Value, error) {
	return g.getMany(ctx, repo.Join(referenceFindQuery, "WHERE r.kind = $1 ORDER BY r.name"), kind)
}

func (g *PgReferenceRepository) GetAllActiveByKind(ctx context.Context, kind reference.Kind) ([]reference.Value, error) {
	return g.getMany(ctx, repo.Join(referenceFindQuery, "WHERE r.kind = $1 AND r.is_active ORDER BY r.name"), kind)
}

func (g *PgReferenceRepository) GetByID(ctx context.Context, id uuid.UUID) (reference.Value, error) {
	return g.getOne(ctx, repo.Join(referenceFindQuery, "WHERE r.id = $1"), id)
}

func (g *PgReferenceRepository) Exists(ctx context.Context, kind reference.Kind, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, referenceExistsQuery, kind, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (g *PgReferenceRepository) FirstActiveDefault(ctx context.Context, kind reference.Kind) (reference.Value, error) {
	v, err := g.getOne(
		ctx,
		repo.Join(referenceFindQuery, "WHERE r.kind = $1 AND r.is_default AND r.is_active ORDER BY r.created_at LIMIT 1"),
		kind,
	)
	if err != nil {
		if errors.Is(err, reference.ErrNotFound) {
			return reference.Value{}, reference.ErrNoDefault
		}
		return reference.Value{}, err
	}
	return v, nil
}

func (g *PgReferenceRepository) Create(ctx context.Context, v reference.Value) (reference.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.Value{}, err
	}

	var m models.Reference
	err = tx.QueryRow(
		ctx,
		referenceInsertQuery,
		string(v.Kind()),
		v.Name(),
		v.IsDefault(),
		v.IsActive(),
		v.CreatedBy(),
	).Scan(&m.ID, &m.Kind, &m.Name, &m.IsDefault, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return reference.Value{}, reference.ErrNameTaken
		}
		return reference.Value{}, err
	}

	return toDomainReference(m)
}

func (g *PgReferenceRepository) Update(ctx context.Context, id uuid.UUID, values reference.UpdateValues) (reference.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.Value{}, err
	}

	var m models.Reference
	err = tx.QueryRow(ctx, referenceUpdateQuery, id, values.Name, values.IsDefault, values.IsActive).
		Scan(&m.ID, &m.Kind, &m.Name, &m.IsDefault, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reference.Value{}, reference.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return reference.Value{}, reference.ErrNameTaken
		}
		return reference.Value{}, err
	}

	return toDomainReference(m)
}

func (g *PgReferenceRepository) getOne(ctx context.Context, query string, args ...any) (reference.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reference.Value{}, err
	}

	var m models.Reference
	err = tx.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.Kind, &m.Name, &m.IsDefault, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reference.Value{}, reference.ErrNotFound
		}
		return reference.Value{}, err
	}
	return toDomainReference(m)
}

func (g *PgReferenceRepository) getMany(ctx context.Context, query string, args ...any) ([]reference.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reference.Value
	for rows.Next() {
		var m models.Reference
		if err := rows.Scan(&m.ID, &m.Kind, &m.Name, &m.IsDefault, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		v, err := toDomainReference(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
