package vehicleimport_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/vehicleimport"
	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

var (
	bodyTypeID    = uuid.New()
	categoryID    = uuid.New()
	vehicleTypeID = uuid.New()
	clientID      = uuid.New()
	now           = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func refValue(kind reference.Kind, id uuid.UUID, name string, isDefault bool) reference.Value {
	return reference.Hydrate(id, kind, name, isDefault, true, uuid.Nil, now, now)
}

func snapshots() map[reference.Kind][]reference.Value {
	return map[reference.Kind][]reference.Value{
		reference.KindBodyType:        {refValue(reference.KindBodyType, bodyTypeID, "Pickup", true)},
		reference.KindVehicleCategory: {refValue(reference.KindVehicleCategory, categoryID, "Commercial", true)},
		reference.KindVehicleType:     {refValue(reference.KindVehicleType, vehicleTypeID, "Truck", true)},
	}
}

func clientSnapshot() []client.Client {
	return []client.Client{
		client.Hydrate(clientID, "Acme Ltd", "", "", true, uuid.Nil, now, now),
	}
}

func nameResolver() vehicleimport.Resolver {
	return vehicleimport.NewNameResolver(snapshots(), clientSnapshot())
}

func stringCell(v string) tabular.Cell {
	return tabular.Cell{Kind: tabular.KindString, Raw: v}
}

func numberCell(v float64) tabular.Cell {
	return tabular.Cell{Kind: tabular.KindNumber, Raw: fmt.Sprintf("%v", v), Number: v}
}

var namesHeaders = []string{
	"registration_no", "make", "model", "year", "chassis_no", "engine_no",
	"body_type", "category", "vehicle_type", "client", "received_at",
}

func namesRow(index int, regNo string, overrides map[string]tabular.Cell) tabular.Row {
	cells := map[string]tabular.Cell{
		"registration_no": stringCell(regNo),
		"make":            stringCell("Toyota"),
		"model":           stringCell("Hilux"),
		"year":            stringCell("2018"),
		"chassis_no":      stringCell("CH-" + regNo),
		"engine_no":       stringCell("EN-" + regNo),
		"body_type":       stringCell("Pickup"),
		"category":        stringCell("Commercial"),
		"vehicle_type":    stringCell("Truck"),
		"client":          stringCell("Acme Ltd"),
	}
	for k, v := range overrides {
		cells[k] = v
	}
	return tabular.Row{Index: index, Line: index + 2, Cells: cells}
}

func namesTable(rows ...tabular.Row) tabular.Table {
	return tabular.Table{Headers: namesHeaders, Rows: rows}
}

func TestPrepare_MissingColumnsNamesEveryAbsentColumn(t *testing.T) {
	table := tabular.Table{
		Headers: []string{"registration_no", "make", "model", "year", "chassis_no"},
		Rows:    []tabular.Row{namesRow(0, "KAA 001A", nil)},
	}

	_, _, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 500, now)

	var missing *vehicleimport.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "engine_no")
	assert.Contains(t, missing.Columns, "body_type")
	assert.Contains(t, missing.Columns, "client")
	assert.Contains(t, missing.Error(), "engine_no")
}

func TestPrepare_OwnerExemptsClientColumn(t *testing.T) {
	table := tabular.Table{
		Headers: []string{
			"registration_no", "make", "model", "year", "chassis_no", "engine_no",
			"body_type", "category", "vehicle_type",
		},
		Rows: []tabular.Row{namesRow(0, "KAA 001A", nil)},
	}

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), clientID, nil, 500, now)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, clientID, valid[0].ClientID)
	assert.Len(t, results, 1)
}

func TestPrepare_MixedRowsKeepLedgerComplete(t *testing.T) {
	existing := map[string]struct{}{"KAA 003C": {}}
	table := namesTable(
		namesRow(0, "KAA 001A", nil),
		namesRow(1, "KAA 002B", map[string]tabular.Cell{"engine_no": stringCell("  ")}),
		namesRow(2, "KAA 003C", nil),
	)

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, existing, 500, now)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, "KAA 001A", valid[0].RegistrationNo)

	vehicleimport.ExecuteBatches(context.Background(), valid, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		return nil
	})

	summary := vehicleimport.NewSummary(results)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Results, 3)

	assert.Equal(t, vehicleimport.StatusSuccess, summary.Results[0].Status)
	assert.Equal(t, vehicleimport.StatusError, summary.Results[1].Status)
	assert.Contains(t, summary.Results[1].Message, "engine_no is required")
	assert.Equal(t, 3, summary.Results[1].Line)
	assert.Equal(t, vehicleimport.StatusError, summary.Results[2].Status)
	assert.Contains(t, summary.Results[2].Message, "already exists")
}

func TestPrepare_RerunReportsEveryRowAsDuplicate(t *testing.T) {
	table := namesTable(
		namesRow(0, "KAA 001A", nil),
		namesRow(1, "KAA 002B", nil),
	)

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 500, now)
	require.NoError(t, err)
	require.Len(t, valid, 2)

	// First run writes everything.
	written := map[string]struct{}{}
	vehicleimport.ExecuteBatches(context.Background(), valid, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		written[row.RegistrationNo] = struct{}{}
		return nil
	})
	first := vehicleimport.NewSummary(results)
	assert.Equal(t, 2, first.Succeeded)

	// Second run of the same file against the updated set: every row is
	// reported as a duplicate, none silently skipped.
	valid, results, err = vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, written, 500, now)
	require.NoError(t, err)
	assert.Empty(t, valid)

	second := vehicleimport.NewSummary(results)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, 2, second.Failed)
	for _, r := range second.Results {
		assert.Contains(t, r.Message, "already exists")
	}
}

func TestValidateRow_SerialDateNormalization(t *testing.T) {
	row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"received_at": numberCell(45306)})

	parsed, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
	require.Empty(t, problems)
	require.NotNil(t, parsed.ReceivedAt)
	assert.Equal(t, "2024-01-15", parsed.ReceivedAt.Format("2006-01-02"))
}

func TestValidateRow_DateForms(t *testing.T) {
	tests := []struct {
		name string
		cell tabular.Cell
		want string
		ok   bool
	}{
		{"dd/mm/yyyy", stringCell("15/01/2024"), "2024-01-15", true},
		{"iso", stringCell("2024-01-15"), "2024-01-15", true},
		{"garbage", stringCell("yesterday"), "", false},
		{"year out of range", stringCell("15/01/1999"), "", false},
		{"serial out of range", numberCell(100), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"received_at": tt.cell})
			parsed, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
			if tt.ok {
				require.Empty(t, problems)
				require.NotNil(t, parsed.ReceivedAt)
				assert.Equal(t, tt.want, parsed.ReceivedAt.Format("2006-01-02"))
			} else {
				require.NotEmpty(t, problems)
				assert.Contains(t, problems[0], "received_at")
			}
		})
	}
}

func TestValidateRow_YearBounds(t *testing.T) {
	for _, year := range []string{"1899", "2028", "soon"} {
		row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"year": stringCell(year)})
		_, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
		require.NotEmpty(t, problems, "year %s should fail", year)
		assert.Contains(t, problems[0], "year")
	}

	// now.Year()+1 is still allowed.
	row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"year": stringCell("2027")})
	parsed, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
	require.Empty(t, problems)
	assert.Equal(t, 2027, parsed.Year)
}

func TestValidateRow_UnresolvedBodyTypeFailsWithoutWrite(t *testing.T) {
	table := namesTable(namesRow(0, "KAA 001A", map[string]tabular.Cell{"body_type": stringCell("Hovercraft")}))

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 500, now)
	require.NoError(t, err)
	assert.Empty(t, valid)

	var writes int32
	vehicleimport.ExecuteBatches(context.Background(), valid, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		atomic.AddInt32(&writes, 1)
		return nil
	})
	assert.Zero(t, writes)

	summary := vehicleimport.NewSummary(results)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[0].Message, `body_type "Hovercraft" not found`)
}

func TestValidateRow_EmptyReferenceFallsBackToDefault(t *testing.T) {
	row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"body_type": stringCell("")})

	parsed, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
	require.Empty(t, problems)
	assert.Equal(t, bodyTypeID, parsed.BodyTypeID)
}

func TestValidateRow_EmptyReferenceWithoutDefaultIsRequired(t *testing.T) {
	values := snapshots()
	values[reference.KindBodyType] = []reference.Value{
		refValue(reference.KindBodyType, bodyTypeID, "Pickup", false),
	}
	res := vehicleimport.NewNameResolver(values, clientSnapshot())
	row := namesRow(0, "KAA 001A", map[string]tabular.Cell{"body_type": stringCell("")})

	_, problems := vehicleimport.ValidateRow(row, res, uuid.Nil, now)
	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "body_type is required")
}

func TestValidateRow_CaseInsensitiveNameMatch(t *testing.T) {
	row := namesRow(0, "KAA 001A", map[string]tabular.Cell{
		"body_type": stringCell("  pickup "),
		"client":    stringCell("ACME LTD"),
	})

	parsed, problems := vehicleimport.ValidateRow(row, nameResolver(), uuid.Nil, now)
	require.Empty(t, problems)
	assert.Equal(t, bodyTypeID, parsed.BodyTypeID)
	assert.Equal(t, clientID, parsed.ClientID)
}

func TestIDResolver_ExistenceChecks(t *testing.T) {
	res := vehicleimport.NewIDResolver(snapshots(), clientSnapshot())

	id, err := res.ResolveReference(reference.KindBodyType, bodyTypeID.String())
	require.NoError(t, err)
	assert.Equal(t, bodyTypeID, id)

	_, err = res.ResolveReference(reference.KindBodyType, uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body_type_id")
	assert.Contains(t, err.Error(), "not found")

	_, err = res.ResolveReference(reference.KindBodyType, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid id")

	_, err = res.ResolveClient(uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_id")
}

func TestExecuteBatches_SequentialWavesBoundConcurrency(t *testing.T) {
	rows := make([]vehicleimport.ParsedRow, 25)
	for i := range rows {
		rows[i] = vehicleimport.ParsedRow{Index: i, Line: i + 2, RegistrationNo: fmt.Sprintf("KAA %03dA", i)}
	}
	results := make([]vehicleimport.RowResult, len(rows))

	var mu sync.Mutex
	var inFlight, maxInFlight int
	done := make(map[int]bool, len(rows))
	var barrierBroken bool

	vehicleimport.ExecuteBatches(context.Background(), rows, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		// The wait-for-all barrier means every row from an earlier batch
		// must already be finished when this row starts.
		for i := 0; i < (row.Index/10)*10; i++ {
			if !done[i] {
				barrierBroken = true
			}
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inFlight--
		done[row.Index] = true
		mu.Unlock()
		return nil
	})

	assert.LessOrEqual(t, maxInFlight, 10)
	assert.False(t, barrierBroken, "a later batch started before an earlier one finished")

	summary := vehicleimport.NewSummary(results)
	assert.Equal(t, 25, summary.Total)
	assert.Equal(t, 25, summary.Succeeded)
}

func TestExecuteBatches_RowFailureNeverAbortsSiblings(t *testing.T) {
	rows := make([]vehicleimport.ParsedRow, 5)
	for i := range rows {
		rows[i] = vehicleimport.ParsedRow{Index: i, Line: i + 2, RegistrationNo: fmt.Sprintf("KAA %03dA", i)}
	}
	results := make([]vehicleimport.RowResult, len(rows))

	vehicleimport.ExecuteBatches(context.Background(), rows, 2, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		if row.Index == 2 {
			return errors.New("unique constraint violation")
		}
		return nil
	})

	summary := vehicleimport.NewSummary(results)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, vehicleimport.StatusError, summary.Results[2].Status)
	assert.Contains(t, summary.Results[2].Message, "unique constraint")
}

func TestPrepare_RowCapTruncates(t *testing.T) {
	rows := make([]tabular.Row, 7)
	for i := range rows {
		rows[i] = namesRow(i, fmt.Sprintf("KAA %03dA", i), nil)
	}

	valid, results, err := vehicleimport.Prepare(namesTable(rows...), vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 5, now)
	require.NoError(t, err)
	assert.Len(t, valid, 5)
	assert.Len(t, results, 5)
}

func TestSummary_ErrorMessagesCarryFileLines(t *testing.T) {
	table := namesTable(
		namesRow(0, "KAA 001A", nil),
		namesRow(1, "", nil),
	)

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 500, now)
	require.NoError(t, err)
	vehicleimport.ExecuteBatches(context.Background(), valid, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		return nil
	})

	messages := vehicleimport.NewSummary(results).ErrorMessages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "row 3:")
	assert.Contains(t, messages[0], "registration_no is required")
}

func TestParseMode(t *testing.T) {
	mode, ok := vehicleimport.ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, vehicleimport.ModeNames, mode)

	mode, ok = vehicleimport.ParseMode(" IDS ")
	assert.True(t, ok)
	assert.Equal(t, vehicleimport.ModeIDs, mode)

	_, ok = vehicleimport.ParseMode("magic")
	assert.False(t, ok)
}

func TestPrepare_LedgerKeepsSourceLinesAfterBlankRows(t *testing.T) {
	// A blank line between data rows is dropped by the decoder, so the
	// second row sits at file line 4 while its ledger slot is index 1.
	first := namesRow(0, "KAA 001A", nil)
	second := namesRow(1, "", nil)
	second.Line = 4
	table := namesTable(first, second)

	valid, results, err := vehicleimport.Prepare(table, vehicleimport.ModeNames, nameResolver(), uuid.Nil, nil, 500, now)
	require.NoError(t, err)
	vehicleimport.ExecuteBatches(context.Background(), valid, 10, results, func(ctx context.Context, row vehicleimport.ParsedRow) error {
		return nil
	})

	summary := vehicleimport.NewSummary(results)
	assert.Equal(t, 2, summary.Results[0].Line)
	assert.Equal(t, 1, summary.Results[1].RowIndex)
	assert.Equal(t, 4, summary.Results[1].Line)

	messages := summary.ErrorMessages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "row 4:")
}
