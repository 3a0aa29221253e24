package converter

import (
	"fmt"
	"strings"

	"github.com/nconklindev/catalogfmt/internal/types"

	"golang.org/x/text/unicode/norm"
)

const (
	// HeaderMarker is the label that identifies the real header row.
	HeaderMarker = "품목명"

	// RowDetectionLimit is how many leading rows are searched for the marker.
	RowDetectionLimit = 10
)

// HeaderLocator finds the header row by looking for Marker in the first
// ScanLimit rows.
type HeaderLocator struct {
	Marker    string
	ScanLimit int
}

// DefaultHeaderLocator searches for HeaderMarker within RowDetectionLimit rows.
func DefaultHeaderLocator() HeaderLocator {
	return HeaderLocator{
		Marker:    HeaderMarker,
		ScanLimit: RowDetectionLimit,
	}
}

// Locate picks the header row and returns the rows below it keyed by that
// header. When no row in the scan window holds the marker, the first row
// is used and HeaderRow is -1.
func (l HeaderLocator) Locate(raw *types.RawData) (*types.FileData, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse", ErrHeaderParse)
	}

	headerRowIdx := l.findHeaderRow(raw.Rows)
	start := headerRowIdx
	if start < 0 {
		start = 0
	}

	headers := headerNames(raw.Rows[start])
	rows := make([][]string, 0, len(raw.Rows)-start-1)

	for i := start + 1; i < len(raw.Rows); i++ {
		row, err := fitRow(raw.Rows[i], len(headers))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrHeaderParse, i+1, err)
		}
		rows = append(rows, row)
	}

	return &types.FileData{
		Headers:   headers,
		Rows:      rows,
		HeaderRow: headerRowIdx,
	}, nil
}

// findHeaderRow returns the lowest index within the scan window whose cells
// contain the marker, or -1.
func (l HeaderLocator) findHeaderRow(rows [][]string) int {
	marker := norm.NFC.String(strings.TrimSpace(l.Marker))

	searchLimit := len(rows)
	if searchLimit > l.ScanLimit {
		searchLimit = l.ScanLimit
	}

	for i := 0; i < searchLimit; i++ {
		for _, cell := range rows[i] {
			if norm.NFC.String(strings.TrimSpace(cell)) == marker {
				return i
			}
		}
	}
	return -1
}

// headerNames trims header cells, names blanks "Unnamed: <i>" and suffixes
// repeated names with .1, .2, ...
func headerNames(row []string) []string {
	headers := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	counts := make(map[string]int, len(row))

	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for seen[name] {
			counts[base]++
			name = fmt.Sprintf("%s.%d", base, counts[base])
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}

// fitRow pads a data row to width. Cells beyond the header are only
// allowed when they are empty.
func fitRow(row []string, width int) ([]string, error) {
	if len(row) > width {
		for j := width; j < len(row); j++ {
			if strings.TrimSpace(row[j]) != "" {
				return nil, fmt.Errorf("expected %d fields, saw %d", width, len(row))
			}
		}
		row = row[:width]
	}

	out := make([]string, width)
	copy(out, row)
	return out, nil
}

// HeaderMessage renders the header report shown to the user.
func HeaderMessage(headerRow int) string {
	if headerRow < 0 {
		return "헤더를 찾지 못했습니다. 첫 번째 행을 헤더로 사용합니다."
	}
	return fmt.Sprintf("헤더를 %d번째 행에서 찾았습니다.", headerRow+1)
}
