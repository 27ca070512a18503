package vehicle

import "github.com/fleetgrid/fleet-sdk/pkg/serrors"

var (
	ErrNotFound          = serrors.NewError("VEHICLE_NOT_FOUND", "vehicle not found")
	ErrRegistrationTaken = serrors.NewError("VEHICLE_REGISTRATION_TAKEN", "vehicle with this registration number already exists")
)
