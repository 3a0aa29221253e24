package types

type ConversionResult struct {
	RunID          string
	InputFile      string
	OutputFile     string
	HeaderRow      int // 1-based, 0 when the first row was used by default
	ColumnsFound   []string
	ColumnsMissing []string
	RowsProcessed  int
}

// RawData holds sheet rows before any header has been chosen.
type RawData struct {
	Source string
	Rows   [][]string
}

type FileData struct {
	Headers   []string
	Rows      [][]string
	HeaderRow int // index into RawData.Rows, -1 when defaulted
}

// ColumnIndex returns the position of the named header, or -1.
func (d *FileData) ColumnIndex(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
