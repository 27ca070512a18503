package client

import "github.com/fleetgrid/fleet-sdk/pkg/serrors"

var ErrNotFound = serrors.NewError("CLIENT_NOT_FOUND", "client not found")
