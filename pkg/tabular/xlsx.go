package tabular

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

func decodeXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, errors.Wrap(ErrDecode, "not a spreadsheet")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.Wrap(ErrDecode, "workbook has no sheets")
	}

	// Raw cell values keep numeric and date-serial cells numeric instead
	// of rendering them through the cell's display format.
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, errors.Wrap(ErrDecode, "failed to read sheet rows")
	}
	if len(records) == 0 {
		return Table{}, errors.Wrap(ErrDecode, "missing header row")
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(strings.ToLower(h)))
	}

	var rows []Row
	for pos, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		cells := make(map[string]Cell, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			cells[h] = toCell(record[i])
		}
		// Line counts skipped blank records too; the ledger must point
		// at the sheet row the user actually sees.
		rows = append(rows, Row{Index: len(rows), Line: pos + 2, Cells: cells})
	}

	if len(rows) == 0 {
		return Table{}, errors.Wrap(ErrDecode, "no data rows")
	}

	return Table{Headers: headers, Rows: rows}, nil
}

func toCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != "" {
		return Cell{Kind: KindNumber, Raw: raw, Number: n}
	}
	return Cell{Kind: KindString, Raw: raw}
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
