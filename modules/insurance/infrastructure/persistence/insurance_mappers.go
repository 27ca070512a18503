package persistence

import (
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/insurer"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/sticker"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/infrastructure/persistence/models"
)

func parseAll(raw ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func toDomainInsurer(m models.Insurer) (insurer.Insurer, error) {
	ids, err := parseAll(m.ID, m.CreatedBy)
	if err != nil {
		return insurer.Insurer{}, err
	}
	return insurer.Hydrate(ids[0], m.Name, m.IsActive, ids[1], m.CreatedAt, m.UpdatedAt), nil
}

func toDomainPolicy(m models.Policy) (policy.Policy, error) {
	ids, err := parseAll(m.ID, m.VehicleID, m.InsurerID, m.CreatedBy, m.UpdatedBy)
	if err != nil {
		return policy.Policy{}, err
	}
	return policy.Hydrate(
		ids[0],
		m.PolicyNo,
		ids[1],
		ids[2],
		m.Premium,
		m.StartDate,
		m.EndDate,
		policy.Status(m.Status),
		ids[3],
		ids[4],
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainSticker(m models.Sticker) (sticker.Sticker, error) {
	ids, err := parseAll(m.ID, m.TypeID, m.CreatedBy)
	if err != nil {
		return sticker.Sticker{}, err
	}
	return sticker.Hydrate(
		ids[0],
		m.SerialNo,
		ids[1],
		sticker.Status(m.Status),
		ids[2],
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
