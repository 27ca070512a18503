package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/sticker"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
	"github.com/fleetgrid/fleet-sdk/pkg/metrics"
)

type StickerIssuedEvent struct {
	Issuance sticker.Issuance
}

type StickerService struct {
	stickers  sticker.Repository
	policies  policy.Repository
	publisher eventbus.EventBus
	inTx      func(context.Context, func(context.Context) error) error
}

func NewStickerService(stickers sticker.Repository, policies policy.Repository, publisher eventbus.EventBus) *StickerService {
	return &StickerService{
		stickers:  stickers,
		policies:  policies,
		publisher: publisher,
		inTx:      composables.InTx,
	}
}

// WithTxRunner swaps the transaction wrapper, mainly for tests.
func (s *StickerService) WithTxRunner(inTx func(context.Context, func(context.Context) error) error) *StickerService {
	s.inTx = inTx
	return s
}

func (s *StickerService) GetAvailableByType(ctx context.Context, typeID uuid.UUID) ([]sticker.Sticker, error) {
	return s.stickers.GetAvailableByType(ctx, typeID)
}

func (s *StickerService) Create(ctx context.Context, serialNo string, typeID uuid.UUID) (sticker.Sticker, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return sticker.Sticker{}, err
	}
	return s.stickers.Create(ctx, sticker.New(serialNo, typeID, actor))
}

// Issue binds an available sticker to a policy in one short transaction.
// Concurrent issuers of the same sticker lose on the status guard and
// get ErrNotAvailable.
func (s *StickerService) Issue(ctx context.Context, stickerID, policyID uuid.UUID) (sticker.Issuance, error) {
	actor, err := composables.UseUserID(ctx)
	if err != nil {
		return sticker.Issuance{}, err
	}

	var issued sticker.Issuance
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if _, err := s.policies.GetByID(txCtx, policyID); err != nil {
			return err
		}
		if err := s.stickers.MarkIssued(txCtx, stickerID); err != nil {
			return err
		}
		iss, err := s.stickers.CreateIssuance(txCtx, sticker.Issuance{
			StickerID: stickerID,
			PolicyID:  policyID,
			IssuedBy:  actor,
		})
		if err != nil {
			return err
		}
		issued = iss
		return nil
	})
	if err != nil {
		return sticker.Issuance{}, err
	}

	metrics.StickerIssuances.Inc()
	s.publisher.Publish(StickerIssuedEvent{Issuance: issued})
	return issued, nil
}
