package scoring

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrOutOfRangeScore = errors.New("out of range score")
	ErrUnknownKind     = errors.New("unknown score kind")
)

// OutOfRangeScoreError reports a score whose bracket index falls outside the
// age table. Kind is empty when the score did not come from a formula.
type OutOfRangeScoreError struct {
	Kind  string
	Score float64
	Index int
}

func (e *OutOfRangeScoreError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: %.2f maps to bracket index %d outside [0,%d]",
			ErrOutOfRangeScore, e.Score, e.Index, len(ageBrackets)-1)
	}
	return fmt.Sprintf("%s: %s %.2f maps to bracket index %d outside [0,%d]",
		ErrOutOfRangeScore, e.Kind, e.Score, e.Index, len(ageBrackets)-1)
}

// Unwrap exposes ErrOutOfRangeScore to errors.Is.
func (e *OutOfRangeScoreError) Unwrap() error { return ErrOutOfRangeScore }
