package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
)

type staticAuthenticator struct {
	user user.User
	err  error
}

func (s staticAuthenticator) AuthenticateToken(_ context.Context, _ string) (user.User, error) {
	return s.user, s.err
}

func operator() user.User {
	now := time.Now()
	return user.Hydrate(uuid.New(), "operator@example.com", "Operator", user.RoleOperator, true, now, now)
}

func requestWithParams(t *testing.T, token string) (*http.Request, *composables.Params) {
	t.Helper()
	params := &composables.Params{}
	r := httptest.NewRequest("GET", "/fleet/vehicles", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r.WithContext(composables.WithParams(r.Context(), params)), params
}

func TestAuthorize_ValidTokenMarksRequestAuthenticated(t *testing.T) {
	u := operator()
	r, params := requestWithParams(t, "good-token")

	var seen user.User
	handler := middleware.Authorize(staticAuthenticator{user: u})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error
			seen, err = composables.UseUser(r.Context())
			require.NoError(t, err)
			assert.True(t, composables.UseAuthenticated(r.Context()))
		}))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, u.ID(), seen.ID())
	assert.True(t, params.Authenticated)
}

func TestAuthorize_InvalidTokenPassesThroughUnauthenticated(t *testing.T) {
	r, params := requestWithParams(t, "bad-token")

	var called bool
	handler := middleware.Authorize(staticAuthenticator{err: errors.New("token not found")})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			_, err := composables.UseUser(r.Context())
			assert.ErrorIs(t, err, composables.ErrNoUser)
			assert.False(t, composables.UseAuthenticated(r.Context()))
		}))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, called)
	assert.False(t, params.Authenticated)
}

func TestAuthorize_NoHeaderSkipsLookup(t *testing.T) {
	r, params := requestWithParams(t, "")

	handler := middleware.Authorize(staticAuthenticator{err: errors.New("must not be called")})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := composables.UseUser(r.Context())
			assert.ErrorIs(t, err, composables.ErrNoUser)
		}))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.False(t, params.Authenticated)
}
