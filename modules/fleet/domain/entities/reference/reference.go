package reference

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind partitions reference values into independent lookup tables.
type Kind string

const (
	KindBodyType        Kind = "body_type"
	KindVehicleCategory Kind = "vehicle_category"
	KindVehicleType     Kind = "vehicle_type"
	KindStickerType     Kind = "sticker_type"
)

var Kinds = []Kind{KindBodyType, KindVehicleCategory, KindVehicleType, KindStickerType}

func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Value is one row of a lookup table. Values live in the store, not in
// process memory, so edits take effect without a restart.
type Value struct {
	id        uuid.UUID
	kind      Kind
	name      string
	isDefault bool
	isActive  bool
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(kind Kind, name string, isDefault bool, createdBy uuid.UUID) Value {
	return Value{
		kind:      kind,
		name:      strings.TrimSpace(name),
		isDefault: isDefault,
		isActive:  true,
		createdBy: createdBy,
	}
}

func Hydrate(
	id uuid.UUID,
	kind Kind,
	name string,
	isDefault bool,
	isActive bool,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Value {
	return Value{
		id:        id,
		kind:      kind,
		name:      name,
		isDefault: isDefault,
		isActive:  isActive,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (v Value) ID() uuid.UUID        { return v.id }
func (v Value) Kind() Kind           { return v.kind }
func (v Value) Name() string         { return v.name }
func (v Value) IsDefault() bool      { return v.isDefault }
func (v Value) IsActive() bool       { return v.isActive }
func (v Value) CreatedBy() uuid.UUID { return v.createdBy }
func (v Value) CreatedAt() time.Time { return v.createdAt }
func (v Value) UpdatedAt() time.Time { return v.updatedAt }
