package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/aggregates/policy"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/domain/entities/sticker"
	"github.com/fleetgrid/fleet-sdk/modules/insurance/services"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type memStickerRepo struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]sticker.Status
	issued   []sticker.Issuance
}

func newMemStickerRepo() *memStickerRepo {
	return &memStickerRepo{statuses: make(map[uuid.UUID]sticker.Status)}
}

func (m *memStickerRepo) GetAvailableByType(_ context.Context, _ uuid.UUID) ([]sticker.Sticker, error) {
	return nil, nil
}

func (m *memStickerRepo) GetByID(_ context.Context, _ uuid.UUID) (sticker.Sticker, error) {
	return sticker.Sticker{}, sticker.ErrNotFound
}

func (m *memStickerRepo) Create(_ context.Context, s sticker.Sticker) (sticker.Sticker, error) {
	return s, nil
}

func (m *memStickerRepo) MarkIssued(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statuses[id] != sticker.StatusAvailable {
		return sticker.ErrNotAvailable
	}
	m.statuses[id] = sticker.StatusIssued
	return nil
}

func (m *memStickerRepo) CreateIssuance(_ context.Context, iss sticker.Issuance) (sticker.Issuance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iss.ID = uuid.New()
	iss.IssuedAt = time.Now()
	m.issued = append(m.issued, iss)
	return iss, nil
}

type memPolicyRepo struct {
	policies map[uuid.UUID]policy.Policy
}

func (m *memPolicyRepo) GetPaginated(_ context.Context, _ *policy.FindParams) ([]policy.Policy, int64, error) {
	return nil, 0, nil
}

func (m *memPolicyRepo) GetByID(_ context.Context, id uuid.UUID) (policy.Policy, error) {
	p, ok := m.policies[id]
	if !ok {
		return policy.Policy{}, policy.ErrNotFound
	}
	return p, nil
}

func (m *memPolicyRepo) Create(_ context.Context, p policy.Policy) (policy.Policy, error) {
	return p, nil
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func issuerContext() context.Context {
	now := time.Now()
	u := user.Hydrate(uuid.New(), "issuer@example.com", "Issuer", user.RoleOperator, true, now, now)
	return composables.WithUser(context.Background(), u)
}

func testPolicy(id uuid.UUID) policy.Policy {
	now := time.Now()
	return policy.Hydrate(
		id, "POL-001", uuid.New(), uuid.New(), decimal.NewFromInt(120),
		now, now.AddDate(1, 0, 0), policy.StatusActive,
		uuid.Nil, uuid.Nil, now, now,
	)
}

func TestStickerIssue_HappyPath(t *testing.T) {
	stickers := newMemStickerRepo()
	stickerID := uuid.New()
	stickers.statuses[stickerID] = sticker.StatusAvailable

	policyID := uuid.New()
	policies := &memPolicyRepo{policies: map[uuid.UUID]policy.Policy{policyID: testPolicy(policyID)}}

	svc := services.NewStickerService(stickers, policies, eventbus.NewEventPublisher(logrus.New())).
		WithTxRunner(passthroughTx)

	issued, err := svc.Issue(issuerContext(), stickerID, policyID)
	require.NoError(t, err)
	assert.Equal(t, stickerID, issued.StickerID)
	assert.Equal(t, policyID, issued.PolicyID)
	assert.Equal(t, sticker.StatusIssued, stickers.statuses[stickerID])
	assert.Len(t, stickers.issued, 1)
}

func TestStickerIssue_ConcurrentIssuersOnlyOneWins(t *testing.T) {
	stickers := newMemStickerRepo()
	stickerID := uuid.New()
	stickers.statuses[stickerID] = sticker.StatusAvailable

	policyID := uuid.New()
	policies := &memPolicyRepo{policies: map[uuid.UUID]policy.Policy{policyID: testPolicy(policyID)}}

	svc := services.NewStickerService(stickers, policies, eventbus.NewEventPublisher(logrus.New())).
		WithTxRunner(passthroughTx)

	const issuers = 8
	errs := make([]error, issuers)
	var wg sync.WaitGroup
	for i := 0; i < issuers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Issue(issuerContext(), stickerID, policyID)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, sticker.ErrNotAvailable)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, issuers-1, losses)
	assert.Len(t, stickers.issued, 1)
}

func TestStickerIssue_UnknownPolicy(t *testing.T) {
	stickers := newMemStickerRepo()
	stickerID := uuid.New()
	stickers.statuses[stickerID] = sticker.StatusAvailable

	policies := &memPolicyRepo{policies: map[uuid.UUID]policy.Policy{}}
	svc := services.NewStickerService(stickers, policies, eventbus.NewEventPublisher(logrus.New())).
		WithTxRunner(passthroughTx)

	_, err := svc.Issue(issuerContext(), stickerID, uuid.New())
	require.ErrorIs(t, err, policy.ErrNotFound)
	// The guard never ran, so the sticker stays available.
	assert.Equal(t, sticker.StatusAvailable, stickers.statuses[stickerID])
}

func TestStickerIssue_RequiresActingUser(t *testing.T) {
	svc := services.NewStickerService(newMemStickerRepo(), &memPolicyRepo{}, eventbus.NewEventPublisher(logrus.New())).
		WithTxRunner(passthroughTx)

	_, err := svc.Issue(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, composables.ErrNoUser)
}
