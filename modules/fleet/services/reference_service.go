package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type ReferenceService struct {
	repo      reference.Repository
	publisher eventbus.EventBus
}

func NewReferenceService(repo reference.Repository, publisher eventbus.EventBus) *ReferenceService {
	return &ReferenceService{repo: repo, publisher: publisher}
}

func (s *ReferenceService) GetAllByKind(ctx context.Context, kind reference.Kind) ([]reference.Value, error) {
	return s.repo.GetAllByKind(ctx, kind)
}

func (s *ReferenceService) GetAllActiveByKind(ctx context.Context, kind reference.Kind) ([]reference.Value, error) {
	return s.repo.GetAllActiveByKind(ctx, kind)
}

func (s *ReferenceService) Create(ctx context.Context, dto *reference.CreateDTO) (reference.Value, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return reference.Value{}, err
	}
	return s.repo.Create(ctx, dto.ToEntity(actor))
}

func (s *ReferenceService) Update(ctx context.Context, id uuid.UUID, dto *reference.UpdateDTO) (reference.Value, error) {
	return s.repo.Update(ctx, id, dto.ToValues())
}
