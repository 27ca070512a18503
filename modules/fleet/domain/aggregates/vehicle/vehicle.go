package vehicle

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle is keyed naturally by its registration number; the store
// enforces uniqueness on it.
type Vehicle struct {
	id              uuid.UUID
	registrationNo  string
	make            string
	model           string
	year            int
	chassisNo       string
	engineNo        string
	seatingCapacity *int
	cubicCapacity   *int
	grossWeight     *float64
	receivedAt      *time.Time
	clientID        uuid.UUID
	bodyTypeID      uuid.UUID
	categoryID      uuid.UUID
	vehicleTypeID   uuid.UUID
	isActive        bool
	createdBy       uuid.UUID
	updatedBy       uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

type Options struct {
	SeatingCapacity *int
	CubicCapacity   *int
	GrossWeight     *float64
	ReceivedAt      *time.Time
}

func New(
	registrationNo string,
	vehicleMake string,
	model string,
	year int,
	chassisNo string,
	engineNo string,
	clientID uuid.UUID,
	bodyTypeID uuid.UUID,
	categoryID uuid.UUID,
	vehicleTypeID uuid.UUID,
	actor uuid.UUID,
	opts Options,
) Vehicle {
	return Vehicle{
		registrationNo:  strings.ToUpper(strings.TrimSpace(registrationNo)),
		make:            strings.TrimSpace(vehicleMake),
		model:           strings.TrimSpace(model),
		year:            year,
		chassisNo:       strings.TrimSpace(chassisNo),
		engineNo:        strings.TrimSpace(engineNo),
		seatingCapacity: opts.SeatingCapacity,
		cubicCapacity:   opts.CubicCapacity,
		grossWeight:     opts.GrossWeight,
		receivedAt:      opts.ReceivedAt,
		clientID:        clientID,
		bodyTypeID:      bodyTypeID,
		categoryID:      categoryID,
		vehicleTypeID:   vehicleTypeID,
		isActive:        true,
		createdBy:       actor,
		updatedBy:       actor,
	}
}

func Hydrate(
	id uuid.UUID,
	registrationNo string,
	vehicleMake string,
	model string,
	year int,
	chassisNo string,
	engineNo string,
	clientID uuid.UUID,
	bodyTypeID uuid.UUID,
	categoryID uuid.UUID,
	vehicleTypeID uuid.UUID,
	isActive bool,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
	opts Options,
) Vehicle {
	return Vehicle{
		id:              id,
		registrationNo:  registrationNo,
		make:            vehicleMake,
		model:           model,
		year:            year,
		chassisNo:       chassisNo,
		engineNo:        engineNo,
		seatingCapacity: opts.SeatingCapacity,
		cubicCapacity:   opts.CubicCapacity,
		grossWeight:     opts.GrossWeight,
		receivedAt:      opts.ReceivedAt,
		clientID:        clientID,
		bodyTypeID:      bodyTypeID,
		categoryID:      categoryID,
		vehicleTypeID:   vehicleTypeID,
		isActive:        isActive,
		createdBy:       createdBy,
		updatedBy:       updatedBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (v Vehicle) ID() uuid.UUID          { return v.id }
func (v Vehicle) RegistrationNo() string { return v.registrationNo }
func (v Vehicle) Make() string           { return v.make }
func (v Vehicle) Model() string          { return v.model }
func (v Vehicle) Year() int              { return v.year }
func (v Vehicle) ChassisNo() string      { return v.chassisNo }
func (v Vehicle) EngineNo() string       { return v.engineNo }
func (v Vehicle) SeatingCapacity() *int  { return v.seatingCapacity }
func (v Vehicle) CubicCapacity() *int    { return v.cubicCapacity }
func (v Vehicle) GrossWeight() *float64  { return v.grossWeight }
func (v Vehicle) ReceivedAt() *time.Time { return v.receivedAt }
func (v Vehicle) ClientID() uuid.UUID    { return v.clientID }
func (v Vehicle) BodyTypeID() uuid.UUID  { return v.bodyTypeID }
func (v Vehicle) CategoryID() uuid.UUID  { return v.categoryID }
func (v Vehicle) VehicleTypeID() uuid.UUID { return v.vehicleTypeID }
func (v Vehicle) IsActive() bool         { return v.isActive }
func (v Vehicle) CreatedBy() uuid.UUID   { return v.createdBy }
func (v Vehicle) UpdatedBy() uuid.UUID   { return v.updatedBy }
func (v Vehicle) CreatedAt() time.Time   { return v.createdAt }
func (v Vehicle) UpdatedAt() time.Time   { return v.updatedAt }
