package geo

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when parallel coordinate sequences differ in length.
var ErrLengthMismatch = errors.New("coordinate sequences differ in length")

// DomainError reports a local offset whose ratio to the local radius of
// curvature falls outside [-1, 1], leaving the arcsine inversion undefined.
type DomainError struct {
	Axis  string  // Axis is "north" or "east".
	Index int     // Index of the offending sample.
	Ratio float64 // Ratio that fell outside the arcsine domain.
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("local %s offset at index %d is outside the linearized frame: ratio %g exceeds arcsine domain",
		e.Axis, e.Index, e.Ratio)
}
