package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type ClientService struct {
	repo      client.Repository
	publisher eventbus.EventBus
}

func NewClientService(repo client.Repository, publisher eventbus.EventBus) *ClientService {
	return &ClientService{repo: repo, publisher: publisher}
}

func (s *ClientService) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *ClientService) GetAllActive(ctx context.Context) ([]client.Client, error) {
	return s.repo.GetAllActive(ctx)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, dto *client.CreateDTO) (client.Client, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return client.Client{}, err
	}
	return s.repo.Create(ctx, dto.ToEntity(actor))
}
