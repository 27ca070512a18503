package persistence

import (
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence/models"
)

func toDomainReference(m models.Reference) (reference.Value, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return reference.Value{}, err
	}
	createdBy, err := uuid.Parse(m.CreatedBy)
	if err != nil {
		return reference.Value{}, err
	}
	return reference.Hydrate(
		id,
		reference.Kind(m.Kind),
		m.Name,
		m.IsDefault,
		m.IsActive,
		createdBy,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainClient(m models.Client) (client.Client, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return client.Client{}, err
	}
	createdBy, err := uuid.Parse(m.CreatedBy)
	if err != nil {
		return client.Client{}, err
	}
	return client.Hydrate(
		id,
		m.Name,
		m.Email,
		m.Phone,
		m.IsActive,
		createdBy,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainVehicle(m models.Vehicle) (vehicle.Vehicle, error) {
	ids := make([]uuid.UUID, 0, 7)
	for _, raw := range []string{m.ID, m.ClientID, m.BodyTypeID, m.CategoryID, m.VehicleTypeID, m.CreatedBy, m.UpdatedBy} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return vehicle.Vehicle{}, err
		}
		ids = append(ids, id)
	}
	return vehicle.Hydrate(
		ids[0],
		m.RegistrationNo,
		m.Make,
		m.Model,
		m.Year,
		m.ChassisNo,
		m.EngineNo,
		ids[1],
		ids[2],
		ids[3],
		ids[4],
		m.IsActive,
		ids[5],
		ids[6],
		m.CreatedAt,
		m.UpdatedAt,
		vehicle.Options{
			SeatingCapacity: m.SeatingCapacity,
			CubicCapacity:   m.CubicCapacity,
			GrossWeight:     m.GrossWeight,
			ReceivedAt:      m.ReceivedAt,
		},
	), nil
}
