package ace

import (
	"errors"
	"fmt"
)

// Domain errors for xsdir and ACE table reading.
var (
	// ErrInvalidElement indicates an atomic number outside 1..100.
	ErrInvalidElement = errors.New("ace: invalid element (atomic number must be 1..100)")

	// ErrElementMissing indicates the xsdir file has no line for the element.
	ErrElementMissing = errors.New("ace: element not listed in xsdir")

	// ErrHeader indicates the 12-line table header could not be read.
	ErrHeader = errors.New("ace: malformed table header")

	// ErrTruncated indicates the file ended before the table did.
	ErrTruncated = errors.New("ace: unexpected end of file")

	// ErrLengthMismatch indicates the data block size differs from NXS(1).
	ErrLengthMismatch = errors.New("ace: data count does not match NXS(1)")

	// ErrOutOfRange indicates a JXS locator points outside the data block.
	ErrOutOfRange = errors.New("ace: block locator outside data array")
)

// ParseError wraps an error with the file position it occurred at.
type ParseError struct {
	File    string
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Wrapped)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

func withFile(err error, file string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.File == "" {
		pe.File = file
	}
	return err
}
