package vehicleimport

import (
	"fmt"
	"strings"
)

// Mode selects how reference columns are interpreted: human-readable
// names or pre-resolved ids.
type Mode string

const (
	ModeNames Mode = "names"
	ModeIDs   Mode = "ids"
)

func ParseMode(raw string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeNames, "":
		return ModeNames, true
	case ModeIDs:
		return ModeIDs, true
	}
	return "", false
}

const (
	ColRegistrationNo  = "registration_no"
	ColMake            = "make"
	ColModel           = "model"
	ColYear            = "year"
	ColChassisNo       = "chassis_no"
	ColEngineNo        = "engine_no"
	ColSeatingCapacity = "seating_capacity"
	ColCubicCapacity   = "cubic_capacity"
	ColGrossWeight     = "gross_weight"
	ColReceivedAt      = "received_at"

	ColBodyType    = "body_type"
	ColCategory    = "category"
	ColVehicleType = "vehicle_type"
	ColClient      = "client"

	ColBodyTypeID    = "body_type_id"
	ColCategoryID    = "category_id"
	ColVehicleTypeID = "vehicle_type_id"
	ColClientID      = "client_id"
)

// RequiredColumns lists the header names a file must carry for the given
// mode. A pre-selected owner removes the client column requirement.
func RequiredColumns(mode Mode, hasOwner bool) []string {
	cols := []string{
		ColRegistrationNo,
		ColMake,
		ColModel,
		ColYear,
		ColChassisNo,
		ColEngineNo,
	}
	if mode == ModeIDs {
		cols = append(cols, ColBodyTypeID, ColCategoryID, ColVehicleTypeID)
		if !hasOwner {
			cols = append(cols, ColClientID)
		}
		return cols
	}
	cols = append(cols, ColBodyType, ColCategory, ColVehicleType)
	if !hasOwner {
		cols = append(cols, ColClient)
	}
	return cols
}

// MissingColumnsError aborts the whole run before any row is examined.
// It names every absent column, not just the first.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}
