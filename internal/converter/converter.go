package converter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/nconklindev/catalogfmt/internal/logger"
	"github.com/nconklindev/catalogfmt/internal/types"

	"github.com/google/uuid"
)

const (
	// VendorToken is the brand token embedded in output file names.
	VendorToken = "나비엠알오"

	outputDateLayout = "20060102"
)

// Stage is a step of the conversion pipeline.
type Stage int

const (
	StageStart Stage = iota
	StageLoaded
	StageHeaderLocated
	StageRemapped
	StageWritten
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageStart:         "start",
	StageLoaded:        "loaded",
	StageHeaderLocated: "header located",
	StageRemapped:      "remapped",
	StageWritten:       "written",
	StageDone:          "done",
	StageFailed:        "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Converter runs one input file through load, header detection, remapping
// and write. Zero Locator and nil Now fall back to DefaultHeaderLocator and
// time.Now.
type Converter struct {
	Locator HeaderLocator
	// OutputDir overrides the output location; empty writes next to the input.
	OutputDir string
	Now       func() time.Time
}

// New returns a Converter with the default locator and the system clock.
func New(outputDir string) *Converter {
	return &Converter{
		Locator:   DefaultHeaderLocator(),
		OutputDir: outputDir,
		Now:       time.Now,
	}
}

// OutputFileName returns the dated name of the converted workbook.
func OutputFileName(t time.Time) string {
	return fmt.Sprintf("%s_bot_%s_형식화.xlsx", t.Format(outputDateLayout), VendorToken)
}

// OutputPath places the dated output name in outputDir, or beside the
// input file when outputDir is empty.
func OutputPath(inputFile, outputDir string, t time.Time) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputFile)
	}
	return filepath.Join(dir, OutputFileName(t))
}

// Convert processes inputFile and reports stage progress on progressChan
// without blocking. The channel may be nil.
func (c *Converter) Convert(inputFile string, progressChan chan<- float64) (*types.ConversionResult, error) {
	runID := uuid.New().String()
	log := logger.With("run_id", runID, "input_file", inputFile)

	outputFile := OutputPath(inputFile, c.OutputDir, c.now())

	stage := StageStart
	log.Info("Starting conversion", "output_file", outputFile)

	// Helper to report progress
	advance := func(next Stage) {
		stage = next
		log.Debug("Stage complete", "stage", stage.String())
		if progressChan != nil {
			select {
			case progressChan <- float64(next) / float64(StageDone):
			default:
			}
		}
	}
	fail := func(err error) error {
		log.Error("Conversion failed", "stage", stage.String(), "error", err)
		return &StageError{Stage: stage, Err: err}
	}

	raw, err := Load(inputFile)
	if err != nil {
		return nil, fail(err)
	}
	advance(StageLoaded)
	log.Info("Loaded input", "raw_rows", len(raw.Rows))

	data, err := c.locator().Locate(raw)
	if err != nil {
		return nil, fail(err)
	}
	advance(StageHeaderLocated)
	logHeader(log, data)

	found, missing := MappedSources(data)
	if len(missing) > 0 {
		log.Warn("Source columns not found", "missing", missing)
	}
	mapped := Remap(data)
	advance(StageRemapped)

	if err := Write(mapped, outputFile); err != nil {
		return nil, fail(err)
	}
	advance(StageWritten)

	advance(StageDone)
	log.Info("Conversion complete", "output_file", outputFile, "rows", len(mapped.Rows))

	return &types.ConversionResult{
		RunID:          runID,
		InputFile:      inputFile,
		OutputFile:     outputFile,
		HeaderRow:      data.HeaderRow + 1,
		ColumnsFound:   found,
		ColumnsMissing: missing,
		RowsProcessed:  len(mapped.Rows),
	}, nil
}

func (c *Converter) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Converter) locator() HeaderLocator {
	if c.Locator == (HeaderLocator{}) {
		return DefaultHeaderLocator()
	}
	return c.Locator
}

func logHeader(log *slog.Logger, data *types.FileData) {
	if data.HeaderRow < 0 {
		log.Info("Header marker not found, using first row", "headers", data.Headers)
		return
	}
	log.Info("Header located", "header_row", data.HeaderRow+1, "headers", data.Headers)
}
