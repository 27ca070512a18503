package vehicleimport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

// ParsedRow is a fully validated and resolved row, ready for the writer.
type ParsedRow struct {
	Index           int
	Line            int
	RegistrationNo  string
	Make            string
	Model           string
	Year            int
	ChassisNo       string
	EngineNo        string
	SeatingCapacity *int
	CubicCapacity   *int
	GrossWeight     *float64
	ReceivedAt      *time.Time
	ClientID        uuid.UUID
	BodyTypeID      uuid.UUID
	CategoryID      uuid.UUID
	VehicleTypeID   uuid.UUID
}

var resolvedKinds = []reference.Kind{
	reference.KindBodyType,
	reference.KindVehicleCategory,
	reference.KindVehicleType,
}

// ValidateRow applies field validation and reference resolution to one
// row. All problems are reported together rather than stopping at the
// first. A pre-selected owner id exempts the row from a client cell.
func ValidateRow(row tabular.Row, res Resolver, ownerID uuid.UUID, now time.Time) (ParsedRow, []string) {
	var problems []string
	parsed := ParsedRow{Index: row.Index, Line: row.Line}

	parsed.RegistrationNo = strings.ToUpper(requireString(row, ColRegistrationNo, &problems))
	parsed.Make = requireString(row, ColMake, &problems)
	parsed.Model = requireString(row, ColModel, &problems)
	parsed.ChassisNo = requireString(row, ColChassisNo, &problems)
	parsed.EngineNo = requireString(row, ColEngineNo, &problems)

	if year, ok := parseYear(row.Cell(ColYear), now, &problems); ok {
		parsed.Year = year
	}
	parsed.SeatingCapacity = parsePositiveInt(row.Cell(ColSeatingCapacity), ColSeatingCapacity, &problems)
	parsed.CubicCapacity = parsePositiveInt(row.Cell(ColCubicCapacity), ColCubicCapacity, &problems)
	parsed.GrossWeight = parsePositiveFloat(row.Cell(ColGrossWeight), ColGrossWeight, &problems)
	parsed.ReceivedAt = parseReceivedAt(row.Cell(ColReceivedAt), &problems)

	for i, kind := range resolvedKinds {
		id := resolveReference(row, kind, res, &problems)
		switch i {
		case 0:
			parsed.BodyTypeID = id
		case 1:
			parsed.CategoryID = id
		case 2:
			parsed.VehicleTypeID = id
		}
	}

	if ownerID != uuid.Nil {
		parsed.ClientID = ownerID
	} else {
		cell := row.Cell(res.ClientColumn())
		if cell.IsEmpty() {
			problems = append(problems, fmt.Sprintf("%s is required", res.ClientColumn()))
		} else if id, err := res.ResolveClient(cell.String()); err != nil {
			problems = append(problems, err.Error())
		} else {
			parsed.ClientID = id
		}
	}

	return parsed, problems
}

func resolveReference(row tabular.Row, kind reference.Kind, res Resolver, problems *[]string) uuid.UUID {
	column := res.ReferenceColumn(kind)
	cell := row.Cell(column)
	if cell.IsEmpty() {
		if id, ok := res.DefaultReference(kind); ok {
			return id
		}
		*problems = append(*problems, fmt.Sprintf("%s is required", column))
		return uuid.Nil
	}
	id, err := res.ResolveReference(kind, cell.String())
	if err != nil {
		*problems = append(*problems, err.Error())
		return uuid.Nil
	}
	return id
}

func requireString(row tabular.Row, column string, problems *[]string) string {
	cell := row.Cell(column)
	if cell.IsEmpty() {
		*problems = append(*problems, fmt.Sprintf("%s is required", column))
		return ""
	}
	return cell.String()
}

func parseYear(cell tabular.Cell, now time.Time, problems *[]string) (int, bool) {
	if cell.IsEmpty() {
		*problems = append(*problems, "year is required")
		return 0, false
	}
	year, ok := cellInt(cell)
	if !ok {
		*problems = append(*problems, fmt.Sprintf("year %q is not a number", cell.String()))
		return 0, false
	}
	max := now.Year() + 1
	if year < 1900 || year > max {
		*problems = append(*problems, fmt.Sprintf("year must be between 1900 and %d", max))
		return 0, false
	}
	return year, true
}

func parsePositiveInt(cell tabular.Cell, column string, problems *[]string) *int {
	if cell.IsEmpty() {
		return nil
	}
	v, ok := cellInt(cell)
	if !ok || v <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive number", column))
		return nil
	}
	return &v
}

func parsePositiveFloat(cell tabular.Cell, column string, problems *[]string) *float64 {
	if cell.IsEmpty() {
		return nil
	}
	var v float64
	if cell.Kind == tabular.KindNumber {
		v = cell.Number
	} else {
		parsed, err := strconv.ParseFloat(cell.String(), 64)
		if err != nil {
			*problems = append(*problems, fmt.Sprintf("%s must be a positive number", column))
			return nil
		}
		v = parsed
	}
	if v <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive number", column))
		return nil
	}
	return &v
}

// parseReceivedAt accepts a spreadsheet day serial, DD/MM/YYYY, or an
// already-normalized YYYY-MM-DD string. The parsed year must land in
// [2000, 2100].
func parseReceivedAt(cell tabular.Cell, problems *[]string) *time.Time {
	if cell.IsEmpty() {
		return nil
	}

	var t time.Time
	if cell.Kind == tabular.KindNumber {
		t = tabular.SerialToTime(cell.Number)
	} else {
		raw := cell.String()
		var err error
		t, err = time.Parse("02/01/2006", raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			*problems = append(*problems, fmt.Sprintf("%s %q is not a valid date", ColReceivedAt, raw))
			return nil
		}
	}

	if t.Year() < 2000 || t.Year() > 2100 {
		*problems = append(*problems, fmt.Sprintf("%s year must be between 2000 and 2100", ColReceivedAt))
		return nil
	}
	t = t.Truncate(24 * time.Hour)
	return &t
}

func cellInt(cell tabular.Cell) (int, bool) {
	if cell.Kind == tabular.KindNumber {
		if cell.Number != math.Trunc(cell.Number) {
			return 0, false
		}
		return int(cell.Number), true
	}
	v, err := strconv.Atoi(cell.String())
	if err != nil {
		return 0, false
	}
	return v, true
}
