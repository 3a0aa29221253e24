package converter

import "errors"

// Failure kinds of a conversion, matched with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrLoad              = errors.New("failed to load input file")
	ErrHeaderParse       = errors.New("failed to parse header")
	ErrWrite             = errors.New("failed to write output file")
)

// StageError carries the last stage a failed conversion reached.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage reports the last stage reached before err was raised.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return StageFailed, false
}
