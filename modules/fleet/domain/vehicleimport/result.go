package vehicleimport

import "fmt"

type RowStatus string

const (
	StatusSuccess RowStatus = "success"
	StatusError   RowStatus = "error"
)

// RowResult is one ledger entry. Every input row produces exactly one,
// in the original file order. Line is the row's position in the source
// file as the decoder saw it, so it stays accurate when the file
// carries blank lines.
type RowResult struct {
	RowIndex   int       `json:"row_index"`
	Line       int       `json:"line"`
	Status     RowStatus `json:"status"`
	Identifier string    `json:"identifier,omitempty"`
	Message    string    `json:"message,omitempty"`
}

func successResult(rowIndex, line int, identifier string) RowResult {
	return RowResult{
		RowIndex:   rowIndex,
		Line:       line,
		Status:     StatusSuccess,
		Identifier: identifier,
	}
}

func errorResult(rowIndex, line int, identifier, message string) RowResult {
	return RowResult{
		RowIndex:   rowIndex,
		Line:       line,
		Status:     StatusError,
		Identifier: identifier,
		Message:    message,
	}
}

// Summary is the terminal accounting of a run. Succeeded+Failed always
// equals Total, and Results carries one entry per processed row.
type Summary struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []RowResult `json:"results"`
}

// NewSummary folds a complete ledger into counts. It panics on a ledger
// with unfilled slots since that means a row was lost, which the
// pipeline must never allow.
func NewSummary(results []RowResult) Summary {
	s := Summary{Total: len(results), Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusError:
			s.Failed++
		default:
			panic(fmt.Sprintf("row %d has no terminal status", r.RowIndex))
		}
	}
	return s
}

// ErrorMessages flattens failed rows into user-facing messages with file
// line numbers.
func (s Summary) ErrorMessages() []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == StatusError {
			out = append(out, fmt.Sprintf("row %d: %s", r.Line, r.Message))
		}
	}
	return out
}
