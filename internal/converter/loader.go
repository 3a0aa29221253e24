package converter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nconklindev/catalogfmt/internal/types"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Load reads the first sheet of an .xlsx file or the contents of a .csv
// file into raw rows. No header is assumed.
func Load(filePath string) (*types.RawData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx":
		rows, err = readXLSXRows(filePath)
	case ".csv":
		rows, err = readCSVRows(filePath)
	default:
		return nil, fmt.Errorf("%w %q: only .xlsx and .csv files are supported", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return &types.RawData{
		Source: filePath,
		Rows:   cleanRows(rows),
	}, nil
}

func readXLSXRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	// Stored values, not display text: a price formatted #,##0 must load
	// as 12500 rather than "12,500".
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSVRows(filePath string) ([][]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}

	// BOMOverride drops a leading byte order mark; without one the bytes
	// pass through untouched.
	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(transform.Nop))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// cleanRows NFC-normalizes every cell and drops rows with no content.
func cleanRows(rows [][]string) [][]string {
	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		out := make([]string, len(row))
		for i, cell := range row {
			out[i] = norm.NFC.String(cell)
		}
		cleaned = append(cleaned, out)
	}
	return cleaned
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
