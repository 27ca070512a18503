package vehicleimport

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WriteFunc persists one validated row. Its error becomes that row's
// ledger entry and never affects sibling rows.
type WriteFunc func(ctx context.Context, row ParsedRow) error

// ExecuteBatches writes rows in sequential batches of the given width.
// Rows within a batch run concurrently with a wait-for-all barrier
// between batches, so at most width writes are in flight at any moment.
// Each row's terminal result lands in results[row.Index].
func ExecuteBatches(ctx context.Context, rows []ParsedRow, width int, results []RowResult, fn WriteFunc) {
	if width <= 0 {
		width = 1
	}

	for start := 0; start < len(rows); start += width {
		end := start + width
		if end > len(rows) {
			end = len(rows)
		}

		var g errgroup.Group
		for _, row := range rows[start:end] {
			g.Go(func() error {
				if err := fn(ctx, row); err != nil {
					results[row.Index] = errorResult(row.Index, row.Line, row.RegistrationNo, err.Error())
				} else {
					results[row.Index] = successResult(row.Index, row.Line, row.RegistrationNo)
				}
				return nil
			})
		}
		// Row errors are captured in the ledger, not returned.
		_ = g.Wait()
	}
}
