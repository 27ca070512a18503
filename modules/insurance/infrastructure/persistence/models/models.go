package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Insurer struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Policy struct {
	ID        string
	PolicyNo  string
	VehicleID string
	InsurerID string
	Premium   decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
	Status    string
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Sticker struct {
	ID        string
	SerialNo  string
	TypeID    string
	Status    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StickerIssuance struct {
	ID        string
	StickerID string
	PolicyID  string
	IssuedBy  string
	IssuedAt  time.Time
}
