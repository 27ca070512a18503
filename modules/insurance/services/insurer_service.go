package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/insurer"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type InsurerService struct {
	repo      insurer.Repository
	publisher eventbus.EventBus
}

func NewInsurerService(repo insurer.Repository, publisher eventbus.EventBus) *InsurerService {
	return &InsurerService{repo: repo, publisher: publisher}
}

func (s *InsurerService) GetAll(ctx context.Context) ([]insurer.Insurer, error) {
	return s.repo.GetAll(ctx)
}

func (s *InsurerService) GetByID(ctx context.Context, id uuid.UUID) (insurer.Insurer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InsurerService) Create(ctx context.Context, dto *insurer.CreateDTO) (insurer.Insurer, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return insurer.Insurer{}, err
	}
	return s.repo.Create(ctx, dto.ToEntity(actor))
}
