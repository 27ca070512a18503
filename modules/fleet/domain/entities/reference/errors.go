package reference

import "github.com/fleetgrid/fleet-sdk/pkg/serrors"

var (
	ErrNotFound  = serrors.NewError("REFERENCE_NOT_FOUND", "reference value not found")
	ErrNoDefault = serrors.NewError("REFERENCE_NO_DEFAULT", "no active default reference value for kind")
	ErrNameTaken = serrors.NewError("REFERENCE_NAME_TAKEN", "reference value with this name already exists")
)
