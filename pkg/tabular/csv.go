package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/go-faster/errors"
)

func decodeCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Table{}, errors.Wrap(ErrDecode, "missing header row")
	}

	headers := make([]string, 0, len(header))
	for _, h := range header {
		headers = append(headers, strings.TrimSpace(strings.ToLower(h)))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrap(ErrDecode, "malformed csv record")
		}

		cells := make(map[string]Cell, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			cells[h] = Cell{Kind: KindString, Raw: record[i]}
		}
		// The csv reader silently drops blank lines, so the record count
		// cannot stand in for the file position.
		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{Index: len(rows), Line: line, Cells: cells})
	}

	if len(rows) == 0 {
		return Table{}, errors.Wrap(ErrDecode, "no data rows")
	}

	return Table{Headers: headers, Rows: rows}, nil
}
