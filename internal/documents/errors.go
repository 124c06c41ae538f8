package documents

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers usage errors: blank required fields and
	// updates that touch no fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound maps the persistence layer's missing-row signal.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedFileKind reports an upload that is neither PDF nor HTML.
	ErrUnsupportedFileKind = errors.New("unsupported file kind")
)

// DataError reports malformed data in a named field: invalid JSON in a
// codec field or a failed text extraction.
type DataError struct {
	Field string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
