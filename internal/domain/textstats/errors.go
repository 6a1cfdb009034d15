package textstats

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrDegenerateInput = errors.New("degenerate input")
)

// DegenerateInputError reports text that tokenizes to zero words or zero
// sentences. Every readability formula divides by one of those counts.
type DegenerateInputError struct {
	Words     int
	Sentences int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: words=%d sentences=%d", ErrDegenerateInput, e.Words, e.Sentences)
}

// Unwrap exposes ErrDegenerateInput to errors.Is.
func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }
