package converter

import (
	"strings"
	"unicode"

	"github.com/nconklindev/catalogfmt/internal/types"

	"golang.org/x/text/unicode/norm"
)

// OutputColumns is the catalog layout, in write order.
var OutputColumns = []string{
	"1차 카테고리", "2차 카테고리", "3차 카테고리", "상품코드", "공급사코드",
	"묶음코드", "상품명", "CasNO", "소비자가", "판매가격", "브랜드", "매입처", "단위",
	"노출여부", "판매여부", "매입가", "규격", "메인이미지", "상세페이지",
}

// ColumnMapping copies a supplier column into an output column.
type ColumnMapping struct {
	Output string
	Source string
}

var ColumnMappings = []ColumnMapping{
	{Output: "공급사코드", Source: "품목코드"},
	{Output: "상품명", Source: "품목명"},
	{Output: "소비자가", Source: "소비자가\n(포함가)"},
	{Output: "판매가격", Source: "소비자가\n(포함가)"},
	{Output: "매입가", Source: "서주가격\n(포함가)"},
	{Output: "단위", Source: "단위"},
	{Output: "규격", Source: "규격"},
	{Output: "CasNO", Source: "CasNO"},
}

// ColumnFill sets an output column to the same literal on every row.
type ColumnFill struct {
	Output string
	Value  string
}

var ConstantFills = []ColumnFill{
	{Output: "브랜드", Value: ""},
	{Output: "매입처", Value: "우양메디칼"},
	{Output: "노출여부", Value: "노출"},
	{Output: "판매여부", Value: "판매"},
}

// Remap builds the catalog layout from supplier data. Mapped columns whose
// source is absent stay empty; constant columns are written last and always
// win.
func Remap(data *types.FileData) *types.FileData {
	outIndex := make(map[string]int, len(OutputColumns))
	for i, name := range OutputColumns {
		outIndex[name] = i
	}

	rows := make([][]string, len(data.Rows))
	for i := range rows {
		rows[i] = make([]string, len(OutputColumns))
	}

	for _, m := range ColumnMappings {
		src := resolveColumn(data, m.Source)
		if src < 0 {
			continue
		}
		dst := outIndex[m.Output]
		for i, row := range data.Rows {
			if src < len(row) {
				rows[i][dst] = row[src]
			}
		}
	}

	for _, fill := range ConstantFills {
		dst := outIndex[fill.Output]
		for i := range rows {
			rows[i][dst] = fill.Value
		}
	}

	headers := make([]string, len(OutputColumns))
	copy(headers, OutputColumns)

	return &types.FileData{
		Headers:   headers,
		Rows:      rows,
		HeaderRow: data.HeaderRow,
	}
}

// MappedSources splits the distinct mapping sources into those present in
// data and those missing, in mapping order.
func MappedSources(data *types.FileData) (found, missing []string) {
	seen := make(map[string]bool)
	for _, m := range ColumnMappings {
		if seen[m.Source] {
			continue
		}
		seen[m.Source] = true

		if idx := resolveColumn(data, m.Source); idx >= 0 {
			found = append(found, data.Headers[idx])
		} else {
			missing = append(missing, m.Source)
		}
	}
	return found, missing
}

// resolveColumn finds name among the headers, first exactly and then
// ignoring whitespace and Unicode composition.
func resolveColumn(data *types.FileData, name string) int {
	if idx := data.ColumnIndex(name); idx >= 0 {
		return idx
	}

	key := normalizeColumnName(name)
	for i, h := range data.Headers {
		if normalizeColumnName(h) == key {
			return i
		}
	}
	return -1
}

func normalizeColumnName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, norm.NFC.String(name))
}
