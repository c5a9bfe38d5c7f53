package dataset

import "fmt"

// DataError is the fatal error kind for dataset problems: a missing
// file, a missing required column, or an unparseable required field.
// Views that depend on the table must not render when loading fails
// with a DataError.
type DataError struct {
	Path   string
	Column string
	Line   int
	Err    error
}

// Error implements the error interface
func (e *DataError) Error() string {
	switch {
	case e.Column != "" && e.Line > 0:
		return fmt.Sprintf("dataset %s: line %d: column %q: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("dataset %s: missing required column %q", e.Path, e.Column)
	default:
		return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying error
func (e *DataError) Unwrap() error {
	return e.Err
}
