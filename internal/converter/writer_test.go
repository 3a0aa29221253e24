package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/catalogfmt/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_Layout(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "out.xlsx")

	data := Remap(&types.FileData{
		Headers: []string{"품목명", "소비자가\n(포함가)"},
		Rows:    [][]string{{"Acetone", "1000"}, {"Ethanol", "12.5"}},
	})
	require.NoError(t, Write(data, outputFile))

	f, err := excelize.OpenFile(outputFile)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{OutputSheet}, f.GetSheetList())

	for i := 1; i <= len(OutputColumns); i++ {
		col, err := excelize.ColumnNumberToName(i)
		require.NoError(t, err)
		width, err := f.GetColWidth(OutputSheet, col)
		require.NoError(t, err)
		assert.Equal(t, float64(ColumnWidth), width, "column %s", col)
	}

	header, rows := readOutput(t, outputFile)
	assert.Equal(t, OutputColumns, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acetone", rows[0][column(t, header, "상품명")])
	assert.Equal(t, "1000", rows[0][column(t, header, "판매가격")])
	assert.Equal(t, "12.5", rows[1][column(t, header, "소비자가")])
	assert.Equal(t, "우양메디칼", rows[1][column(t, header, "매입처")])
}

func TestWrite_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "out.xlsx")
	require.NoError(t, os.WriteFile(outputFile, []byte("stale"), 0644))

	data := Remap(&types.FileData{Headers: []string{"품목명"}, Rows: [][]string{{"Acetone"}}})
	require.NoError(t, Write(data, outputFile))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.xlsx", entries[0].Name())

	_, rows := readOutput(t, outputFile)
	assert.Len(t, rows, 1)
}

func TestWrite_UnwritableDirectory(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "missing", "out.xlsx")

	err := Write(Remap(&types.FileData{}), outputFile)
	assert.ErrorIs(t, err, ErrWrite)

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_TargetIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "out.xlsx")
	require.NoError(t, os.Mkdir(outputFile, 0755))
	// a non-empty directory cannot be replaced by rename
	require.NoError(t, os.WriteFile(filepath.Join(outputFile, "keep"), nil, 0644))

	err := Write(Remap(&types.FileData{}), outputFile)
	assert.ErrorIs(t, err, ErrWrite)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be removed")
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected interface{}
	}{
		{"Empty", "", nil},
		{"Whitespace", "  ", nil},
		{"Integer", "1000", int64(1000)},
		{"Negative integer", "-5", int64(-5)},
		{"Zero", "0", int64(0)},
		{"Decimal", "12.5", 12.5},
		{"Fraction below one", "0.25", 0.25},
		{"Trailing zeros", "12500.00", 12500.0},
		{"Bare fraction", ".5", 0.5},
		{"Fifteen digit integer", "123456789012345", int64(123456789012345)},
		{"Barcode beyond int64", "12345678901234567890", "12345678901234567890"},
		{"Barcode beyond exact digits", "8801234567890123", "8801234567890123"},
		{"Decimal beyond float precision", "0.12345678901234567891", "0.12345678901234567891"},
		{"Leading zero code", "00123", "00123"},
		{"Thousands separator", "1,000", "1,000"},
		{"Exponent stays text", "1e5", "1e5"},
		{"NaN stays text", "NaN", "NaN"},
		{"CAS number", "67-64-1", "67-64-1"},
		{"Text", "500ml", "500ml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellValue(tt.input))
		})
	}
}
