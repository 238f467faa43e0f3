package xlnest

import (
	"errors"
	"fmt"
)

// ErrMalformedInput reports a grid whose data origin cannot be located, or a header
// path that does not fit the tree being built.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError carries the reason and, when known, the offending cell.
type MalformedInputError struct {
	Reason string
	Cell   *CellRef
}

func (e *MalformedInputError) Error() string {
	if e.Cell != nil {
		return fmt.Sprintf("malformed input at %s: %s", e.Cell, e.Reason)
	}
	return "malformed input: " + e.Reason
}

// Is makes errors.Is(err, ErrMalformedInput) true for every MalformedInputError.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func malformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

func malformedAt(cell CellRef, format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...), Cell: &cell}
}
