package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type PolicyCreatedEvent struct {
	Policy policy.Policy
}

type PolicyService struct {
	repo      policy.Repository
	publisher eventbus.EventBus
}

func NewPolicyService(repo policy.Repository, publisher eventbus.EventBus) *PolicyService {
	return &PolicyService{repo: repo, publisher: publisher}
}

func (s *PolicyService) GetPaginated(ctx context.Context, params *policy.FindParams) ([]policy.Policy, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *PolicyService) GetByID(ctx context.Context, id uuid.UUID) (policy.Policy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PolicyService) Create(ctx context.Context, dto *policy.CreateDTO) (policy.Policy, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return policy.Policy{}, err
	}
	created, err := s.repo.Create(ctx, dto.ToEntity(actor))
	if err != nil {
		return policy.Policy{}, err
	}
	s.publisher.Publish(PolicyCreatedEvent{Policy: created})
	return created, nil
}
