package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/catalogfmt/internal/types"

	"github.com/xuri/excelize/v2"
)

const (
	OutputSheet = "Sheet1"
	ColumnWidth = 15
)

// Write saves data as a single-sheet workbook at outputFile. The workbook is
// written to a temporary file in the same directory and renamed into place,
// replacing any existing file.
func Write(data *types.FileData, outputFile string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := fillSheet(f, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := saveAtomic(f, outputFile); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func fillSheet(f *excelize.File, data *types.FileData) error {
	// NewFile always starts with Sheet1; keep the lookup in case that changes.
	if idx, _ := f.GetSheetIndex(OutputSheet); idx < 0 {
		if _, err := f.NewSheet(OutputSheet); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(OutputSheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range data.Rows {
		values := make([]interface{}, len(data.Headers))
		for c := range values {
			if c < len(row) {
				values[c] = cellValue(row[c])
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(OutputSheet, cell, &values); err != nil {
			return err
		}
	}

	if len(data.Headers) == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(OutputSheet, "A", lastCol, ColumnWidth)
}

func saveAtomic(f *excelize.File, outputFile string) error {
	dir := filepath.Dir(outputFile)

	tmp, err := os.CreateTemp(dir, ".catalogfmt-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, outputFile); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// maxExactDigits is how many significant digits a spreadsheet number keeps.
const maxExactDigits = 15

// cellValue returns numbers for cells that are plain integers or decimals
// and the cell text otherwise. A value only becomes a number when the number
// reads back as the same digits, so codes like "00123" and long barcodes
// survive as text.
func cellValue(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	digits := strings.TrimLeft(trimmed, "+-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return s
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if len(digits) > maxExactDigits {
			return s
		}
		return i
	}
	if strings.ContainsAny(trimmed, "eEnNiIxX") {
		// keep "1e5", "NaN", "Inf" as text
		return s
	}
	fl, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || strconv.FormatFloat(fl, 'f', -1, 64) != canonicalDecimal(trimmed) {
		return s
	}
	return fl
}

// canonicalDecimal drops a plus sign and trailing fractional zeros so
// "12500.00" compares equal to the formatted float "12500".
func canonicalDecimal(s string) string {
	s = strings.TrimPrefix(s, "+")
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	}
	return s
}
