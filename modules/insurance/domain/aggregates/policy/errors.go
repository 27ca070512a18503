package policy

import "github.com/fleetgrid/fleet-sdk/pkg/serrors"

var (
	ErrNotFound      = serrors.NewError("POLICY_NOT_FOUND", "policy not found")
	ErrPolicyNoTaken = serrors.NewError("POLICY_NO_TAKEN", "policy with this number already exists")
)
