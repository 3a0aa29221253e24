package converter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSVFile(t *testing.T, dir, name string, records [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	return path
}

func writeXLSXFile(t *testing.T, dir, name string, sheets map[string][][]string, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			if sheet != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", sheet))
			}
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range sheets[sheet] {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet, cell, v))
			}
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// writePricedXLSX writes a header row and one Acetone row whose price is
// the number price displayed with the #,##0 format.
func writePricedXLSX(t *testing.T, dir, name string, price int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"품목명", "소비자가\n(포함가)"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Acetone", price}))

	style, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", style))

	display, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	require.Contains(t, display, ",", "fixture should display a thousands separator")

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// readOutput returns the header row and data rows of Sheet1, each row
// padded to the header width.
func readOutput(t *testing.T, path string) ([]string, [][]string) {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OutputSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		data = append(data, padded)
	}
	return header, data
}

func column(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, h := range header {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not in %v", name, header)
	return -1
}
