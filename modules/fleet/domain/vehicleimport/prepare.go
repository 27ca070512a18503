package vehicleimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

// Prepare runs the whole pre-write half of the pipeline: header check,
// row cap, per-row validation with reference resolution, and the
// duplicate pre-check against the persisted registration numbers.
//
// It returns the rows cleared for writing plus a ledger with one slot
// per processed row; failed rows already carry their terminal result,
// the rest are filled in by the writer.
func Prepare(
	table tabular.Table,
	mode Mode,
	res Resolver,
	ownerID uuid.UUID,
	existing map[string]struct{},
	maxRows int,
	now time.Time,
) ([]ParsedRow, []RowResult, error) {
	if missing := table.MissingColumns(RequiredColumns(mode, ownerID != uuid.Nil)); len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Columns: missing}
	}

	rows := table.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	valid := make([]ParsedRow, 0, len(rows))
	results := make([]RowResult, len(rows))
	for i, row := range rows {
		parsed, problems := ValidateRow(row, res, ownerID, now)
		if len(problems) > 0 {
			results[i] = errorResult(row.Index, row.Line, parsed.RegistrationNo, strings.Join(problems, "; "))
			continue
		}
		// Collisions are reported, never silently skipped.
		if _, taken := existing[parsed.RegistrationNo]; taken {
			results[i] = errorResult(row.Index, row.Line, parsed.RegistrationNo,
				fmt.Sprintf("registration number %q already exists", parsed.RegistrationNo))
			continue
		}
		valid = append(valid, parsed)
	}

	return valid, results, nil
}
