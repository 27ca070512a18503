package persistence

import (
	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/core/infrastructure/persistence/models"
)

func toDomainUser(m models.User) (user.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return user.User{}, err
	}
	return user.Hydrate(
		id,
		m.Email,
		m.FullName,
		user.Role(m.Role),
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
