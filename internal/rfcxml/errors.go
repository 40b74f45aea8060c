package rfcxml

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalNesting is returned when a heading skips a section level.
	ErrIllegalNesting = errors.New("illegal section nesting")
	// ErrUnterminatedFigure is returned when input ends inside a figure block.
	ErrUnterminatedFigure = errors.New("unterminated figure block")
	// ErrMalformedHeading is returned for a heading line without a level digit 1-9.
	ErrMalformedHeading = errors.New("malformed heading")
)

// LineError ties a conversion error to a 1-based input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LineOf reports the input line an error refers to, or 0 if it carries none.
func LineOf(err error) int {
	var le *LineError
	if errors.As(err, &le) {
		return le.Line
	}
	return 0
}
