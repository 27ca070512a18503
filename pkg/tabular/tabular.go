package tabular

import (
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fleetgrid/fleet-sdk/pkg/serrors"
)

// Format declares how uploaded bytes should be decoded.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrDecode covers byte streams that cannot be parsed as a table, tables
// without a header row, and tables with zero data rows.
var ErrDecode = serrors.NewError("TABULAR_DECODE_FAILED", "file could not be decoded as a table")

// CellKind is the native type a cell carried in the source file. CSV
// sources only produce strings; spreadsheets also produce numbers, which
// is how serial dates arrive.
type CellKind int

const (
	KindString CellKind = iota
	KindNumber
)

type Cell struct {
	Kind   CellKind
	Raw    string
	Number float64
}

// IsEmpty reports whether the cell is absent or blank after trimming.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Raw) == ""
}

func (c Cell) String() string {
	return strings.TrimSpace(c.Raw)
}

// Row is one data line keyed by the header row's column names.
type Row struct {
	// Index is zero-based over decoded data rows; the header line is not
	// counted. Ledger slots are addressed by it.
	Index int
	// Line is the 1-based line the row occupies in the source file, with
	// the header on line 1. Blank source lines are skipped by the
	// decoders but still advance Line, so it always matches what the
	// user sees when opening the file.
	Line  int
	Cells map[string]Cell
}

// Cell returns the named cell; the zero Cell doubles as "absent".
func (r Row) Cell(column string) Cell {
	return r.Cells[column]
}

// Table is an ordered sequence of rows sharing one header set.
type Table struct {
	Headers []string
	Rows    []Row
}

// HasColumns returns the required columns missing from the header set.
func (t Table) MissingColumns(required []string) []string {
	present := make(map[string]struct{}, len(t.Headers))
	for _, h := range t.Headers {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Decode parses file bytes in the declared format into a Table.
func Decode(data []byte, format Format) (Table, error) {
	switch format {
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return decodeCSV(data)
	}
}

// DetectFormat sniffs uploaded bytes, falling back to the file name's
// extension. Returns false for anything that is not CSV or XLSX.
func DetectFormat(data []byte, filename string) (Format, bool) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return FormatXLSX, true
	case mtype.Is("text/csv"):
		return FormatCSV, true
	}

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return FormatXLSX, true
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return FormatCSV, true
	}

	// Plain text with separators is close enough to CSV to attempt.
	if mtype.Is("text/plain") {
		return FormatCSV, true
	}
	return "", false
}

// Spreadsheets serialize dates as day counts from an epoch one day before
// 1900-01-01 (the off-by-one absorbs the fictitious 1900 leap day).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialToTime converts a spreadsheet day serial to a UTC time.
func SerialToTime(serial float64) time.Time {
	return serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
}
