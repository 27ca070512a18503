package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type VehicleCreatedEvent struct {
	Vehicle vehicle.Vehicle
}

type VehicleService struct {
	repo      vehicle.Repository
	publisher eventbus.EventBus
}

func NewVehicleService(repo vehicle.Repository, publisher eventbus.EventBus) *VehicleService {
	return &VehicleService{repo: repo, publisher: publisher}
}

func (s *VehicleService) GetPaginated(ctx context.Context, params *vehicle.FindParams) ([]vehicle.Vehicle, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (vehicle.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, dto *vehicle.CreateDTO) (vehicle.Vehicle, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	created, err := s.repo.Create(ctx, dto.ToEntity(actor))
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	s.publisher.Publish(VehicleCreatedEvent{Vehicle: created})
	return created, nil
}
