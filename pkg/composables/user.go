package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/pkg/constants"
)

// ErrNoUser is returned when a write path that stamps audit fields runs
// without an injected acting user. There is deliberately no fallback
// identity.
var ErrNoUser = errors.New("no user found in context")

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

func UseUser(ctx context.Context) (user.User, error) {
	u, ok := ctx.Value(constants.UserKey).(user.User)
	if !ok {
		return user.User{}, ErrNoUser
	}
	return u, nil
}

// UseUserID returns the acting user's identifier for audit stamping.
func UseUserID(ctx context.Context) (uuid.UUID, error) {
	u, err := UseUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID(), nil
}
