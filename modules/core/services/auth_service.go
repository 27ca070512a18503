package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
)

const tokenTTL = 90 * 24 * time.Hour

// AuthService resolves bearer tokens to users. It backs the Authorize
// middleware; requests without a valid token simply stay anonymous.
type AuthService struct {
	users  user.Repository
	tokens user.TokenRepository
}

func NewAuthService(users user.Repository, tokens user.TokenRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (user.User, error) {
	u, err := s.tokens.GetUserByToken(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	if !u.IsActive() {
		return user.User{}, user.ErrTokenInvalid
	}
	return u, nil
}

func (s *AuthService) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	if err := s.tokens.Create(ctx, userID, token, time.Now().Add(tokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}
