package policy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusVoid    Status = "void"
)

type Policy struct {
	id        uuid.UUID
	policyNo  string
	vehicleID uuid.UUID
	insurerID uuid.UUID
	premium   decimal.Decimal
	startDate time.Time
	endDate   time.Time
	status    Status
	createdBy uuid.UUID
	updatedBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(
	policyNo string,
	vehicleID uuid.UUID,
	insurerID uuid.UUID,
	premium decimal.Decimal,
	startDate time.Time,
	endDate time.Time,
	actor uuid.UUID,
) Policy {
	return Policy{
		policyNo:  strings.ToUpper(strings.TrimSpace(policyNo)),
		vehicleID: vehicleID,
		insurerID: insurerID,
		premium:   premium,
		startDate: startDate,
		endDate:   endDate,
		status:    StatusActive,
		createdBy: actor,
		updatedBy: actor,
	}
}

func Hydrate(
	id uuid.UUID,
	policyNo string,
	vehicleID uuid.UUID,
	insurerID uuid.UUID,
	premium decimal.Decimal,
	startDate time.Time,
	endDate time.Time,
	status Status,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Policy {
	return Policy{
		id:        id,
		policyNo:  policyNo,
		vehicleID: vehicleID,
		insurerID: insurerID,
		premium:   premium,
		startDate: startDate,
		endDate:   endDate,
		status:    status,
		createdBy: createdBy,
		updatedBy: updatedBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p Policy) ID() uuid.UUID            { return p.id }
func (p Policy) PolicyNo() string         { return p.policyNo }
func (p Policy) VehicleID() uuid.UUID     { return p.vehicleID }
func (p Policy) InsurerID() uuid.UUID     { return p.insurerID }
func (p Policy) Premium() decimal.Decimal { return p.premium }
func (p Policy) StartDate() time.Time     { return p.startDate }
func (p Policy) EndDate() time.Time       { return p.endDate }
func (p Policy) Status() Status           { return p.status }
func (p Policy) CreatedBy() uuid.UUID     { return p.createdBy }
func (p Policy) UpdatedBy() uuid.UUID     { return p.updatedBy }
func (p Policy) CreatedAt() time.Time     { return p.createdAt }
func (p Policy) UpdatedAt() time.Time     { return p.updatedAt }
