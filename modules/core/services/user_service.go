package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type UserCreatedEvent struct {
	User user.User
}

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) Create(ctx context.Context, dto *user.CreateDTO) (user.User, error) {
	created, err := s.repo.Create(ctx, dto.ToEntity())
	if err != nil {
		return user.User{}, err
	}
	s.publisher.Publish(UserCreatedEvent{User: created})
	return created, nil
}
