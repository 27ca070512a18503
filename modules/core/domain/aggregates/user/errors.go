package user

import "github.com/fleetgrid/fleet-sdk/pkg/serrors"

var (
	ErrNotFound     = serrors.NewError("USER_NOT_FOUND", "user not found")
	ErrEmailTaken   = serrors.NewError("USER_EMAIL_TAKEN", "email already exists")
	ErrTokenInvalid = serrors.NewError("USER_TOKEN_INVALID", "token is invalid or expired")
)
