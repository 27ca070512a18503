package tabular_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("Registration_No,Make,Year\nKAA 001A,Toyota,2018\nKBB 002B,Isuzu,2020\n")

	table, err := tabular.Decode(data, tabular.FormatCSV)
	require.NoError(t, err)
	require.Equal(t, []string{"registration_no", "make", "year"}, table.Headers)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "KAA 001A", table.Rows[0].Cell("registration_no").String())
	require.Equal(t, "2020", table.Rows[1].Cell("year").String())
	require.Equal(t, 1, table.Rows[1].Index)
}

func TestDecodeCSVBlankLineKeepsSourceLines(t *testing.T) {
	data := []byte("registration_no,make\nKAA 001A,Toyota\n\nKAA 002B,Isuzu\n")

	table, err := tabular.Decode(data, tabular.FormatCSV)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, 0, table.Rows[0].Index)
	require.Equal(t, 2, table.Rows[0].Line)
	require.Equal(t, 1, table.Rows[1].Index)
	require.Equal(t, 4, table.Rows[1].Line)
}

func TestDecodeCSVNoDataRows(t *testing.T) {
	_, err := tabular.Decode([]byte("registration_no,make\n"), tabular.FormatCSV)
	require.ErrorIs(t, err, tabular.ErrDecode)
}

func TestDecodeCSVGarbage(t *testing.T) {
	_, err := tabular.Decode([]byte("\"unterminated\nquote,"), tabular.FormatCSV)
	require.ErrorIs(t, err, tabular.ErrDecode)
}

func TestDecodeXLSXKeepsNumericCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"registration_no", "year", "received_at"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"KAA 001A", 2018, 45306}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := tabular.Decode(buf.Bytes(), tabular.FormatXLSX)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	year := table.Rows[0].Cell("year")
	require.Equal(t, tabular.KindNumber, year.Kind)
	require.InDelta(t, 2018, year.Number, 0.001)

	received := table.Rows[0].Cell("received_at")
	require.Equal(t, tabular.KindNumber, received.Kind)
	require.InDelta(t, 45306, received.Number, 0.001)
}

func TestDecodeXLSXBlankRowKeepsSheetLines(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"registration_no", "make"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"KAA 001A", "Toyota"}))
	// Row 3 stays blank; row 4 must still report sheet line 4.
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"KAA 002B", "Isuzu"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := tabular.Decode(buf.Bytes(), tabular.FormatXLSX)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, 0, table.Rows[0].Index)
	require.Equal(t, 2, table.Rows[0].Line)
	require.Equal(t, 1, table.Rows[1].Index)
	require.Equal(t, 4, table.Rows[1].Line)
}

func TestDecodeXLSXGarbage(t *testing.T) {
	_, err := tabular.Decode([]byte("definitely not a zip archive"), tabular.FormatXLSX)
	require.ErrorIs(t, err, tabular.ErrDecode)
}

func TestMissingColumns(t *testing.T) {
	table := tabular.Table{Headers: []string{"registration_no", "make"}}
	missing := table.MissingColumns([]string{"registration_no", "make", "engine_no", "chassis_no"})
	require.Equal(t, []string{"engine_no", "chassis_no"}, missing)
}

func TestSerialToTime(t *testing.T) {
	// 45306 is the spreadsheet serial for 2024-01-15.
	ts := tabular.SerialToTime(45306)
	require.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), ts)
}

func TestDetectFormat(t *testing.T) {
	format, ok := tabular.DetectFormat([]byte("a,b\n1,2\n"), "upload.csv")
	require.True(t, ok)
	require.Equal(t, tabular.FormatCSV, format)

	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	format, ok = tabular.DetectFormat(buf.Bytes(), "upload.xlsx")
	require.True(t, ok)
	require.Equal(t, tabular.FormatXLSX, format)

	_, ok = tabular.DetectFormat([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, "upload.png")
	require.False(t, ok)
}
