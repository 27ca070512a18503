package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/sticker"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/infrastructure/persistence/models"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/repo"
)

const (
	stickerFindQuery = `
        SELECT
            s.id,
            s.serial_no,
            s.type_id,
            s.status,
            s.created_by,
            s.created_at,
            s.updated_at
        FROM stickers s`

	stickerInsertQuery = `
        INSERT INTO stickers (serial_no, type_id, status, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, serial_no, type_id, status, created_by, created_at, updated_at`

	// The status guard is the whole concurrency story: a second issuer
	// matches zero rows and loses.
	stickerMarkIssuedQuery = `
        UPDATE stickers
        SET status = 'issued', updated_at = now()
        WHERE id = $1 AND status = 'available'`

	issuanceInsertQuery = `
        INSERT INTO sticker_issuances (sticker_id, policy_id, issued_by)
        VALUES ($1, $2, $3)
        RETURNING id, sticker_id, policy_id, issued_by, issued_at`
)

type PgStickerRepository struct{}

func NewStickerRepository() sticker.Repository {
	return &PgStickerRepository{}
}

func (g *PgStickerRepository) GetAvailableByType(ctx context.Context, typeID uuid.UUID) ([]sticker.Sticker, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		repo.Join(stickerFindQuery, "WHERE s.type_id = $1 AND s.status = 'available' ORDER BY s.serial_no"),
		typeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sticker.Sticker
	for rows.Next() {
		var m models.Sticker
		if err := rows.Scan(&m.ID, &m.SerialNo, &m.TypeID, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		s, err := toDomainSticker(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (g *PgStickerRepository) GetByID(ctx context.Context, id uuid.UUID) (sticker.Sticker, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sticker.Sticker{}, err
	}

	var m models.Sticker
	err = tx.QueryRow(ctx, repo.Join(stickerFindQuery, "WHERE s.id = $1"), id).
		Scan(&m.ID, &m.SerialNo, &m.TypeID, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sticker.Sticker{}, sticker.ErrNotFound
		}
		return sticker.Sticker{}, err
	}
	return toDomainSticker(m)
}

func (g *PgStickerRepository) Create(ctx context.Context, s sticker.Sticker) (sticker.Sticker, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sticker.Sticker{}, err
	}

	var m models.Sticker
	err = tx.QueryRow(ctx, stickerInsertQuery, s.SerialNo(), s.TypeID(), string(s.Status()), s.CreatedBy()).
		Scan(&m.ID, &m.SerialNo, &m.TypeID, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sticker.Sticker{}, sticker.ErrSerialTaken
		}
		return sticker.Sticker{}, err
	}
	return toDomainSticker(m)
}

func (g *PgStickerRepository) MarkIssued(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, stickerMarkIssuedQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sticker.ErrNotAvailable
	}
	return nil
}

func (g *PgStickerRepository) CreateIssuance(ctx context.Context, iss sticker.Issuance) (sticker.Issuance, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return sticker.Issuance{}, err
	}

	var m models.StickerIssuance
	err = tx.QueryRow(ctx, issuanceInsertQuery, iss.StickerID, iss.PolicyID, iss.IssuedBy).
		Scan(&m.ID, &m.StickerID, &m.PolicyID, &m.IssuedBy, &m.IssuedAt)
	if err != nil {
		return sticker.Issuance{}, err
	}

	ids, err := parseAll(m.ID, m.StickerID, m.PolicyID, m.IssuedBy)
	if err != nil {
		return sticker.Issuance{}, err
	}
	return sticker.Issuance{
		ID:        ids[0],
		StickerID: ids[1],
		PolicyID:  ids[2],
		IssuedBy:  ids[3],
		IssuedAt:  m.IssuedAt,
	}, nil
}
