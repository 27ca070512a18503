package sticker

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

var (
	ErrNotFound     = serrors.NewError("STICKER_NOT_FOUND", "sticker not found")
	ErrSerialTaken  = serrors.NewError("STICKER_SERIAL_TAKEN", "sticker with this serial number already exists")
	ErrNotAvailable = serrors.NewError("STICKER_NOT_AVAILABLE", "sticker is not available for issuance")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
	StatusVoid      Status = "void"
)

type Sticker struct {
	id        uuid.UUID
	serialNo  string
	typeID    uuid.UUID
	status    Status
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(serialNo string, typeID uuid.UUID, createdBy uuid.UUID) Sticker {
	return Sticker{
		serialNo:  strings.ToUpper(strings.TrimSpace(serialNo)),
		typeID:    typeID,
		status:    StatusAvailable,
		createdBy: createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	serialNo string,
	typeID uuid.UUID,
	status Status,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Sticker {
	return Sticker{
		id:        id,
		serialNo:  serialNo,
		typeID:    typeID,
		status:    status,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s Sticker) ID() uuid.UUID        { return s.id }
func (s Sticker) SerialNo() string     { return s.serialNo }
func (s Sticker) TypeID() uuid.UUID    { return s.typeID }
func (s Sticker) Status() Status       { return s.status }
func (s Sticker) CreatedBy() uuid.UUID { return s.createdBy }
func (s Sticker) CreatedAt() time.Time { return s.createdAt }
func (s Sticker) UpdatedAt() time.Time { return s.updatedAt }

// Issuance records a sticker being bound to a policy.
type Issuance struct {
	ID        uuid.UUID
	StickerID uuid.UUID
	PolicyID  uuid.UUID
	IssuedBy  uuid.UUID
	IssuedAt  time.Time
}

type Repository interface {
	GetAvailableByType(ctx context.Context, typeID uuid.UUID) ([]Sticker, error)
	GetByID(ctx context.Context, id uuid.UUID) (Sticker, error)
	Create(ctx context.Context, s Sticker) (Sticker, error)
	// MarkIssued flips an available sticker to issued. It reports
	// ErrNotAvailable when the sticker is absent or already claimed,
	// which is how concurrent issuances lose the race.
	MarkIssued(ctx context.Context, id uuid.UUID) error
	CreateIssuance(ctx context.Context, iss Issuance) (Issuance, error)
}
