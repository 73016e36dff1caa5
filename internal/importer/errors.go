package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the file has no header row.
var ErrEmptyInput = errors.New("input has no header row")

// MissingColumnError reports a required column absent after header normalization.
type MissingColumnError struct {
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// DuplicateColumnError reports two headers that normalize to the same name.
type DuplicateColumnError struct {
	Column string
	First  int // 0-based index of the first occurrence
	Second int
}

func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q appears twice (positions %d and %d) after normalization", e.Column, e.First+1, e.Second+1)
}

// InvalidAmountError reports an amount cell that is not a number.
type InvalidAmountError struct {
	Row   int // 1-based data row
	ID    string
	Value string
}

func (e InvalidAmountError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("row %d: invalid amount %q", e.Row, e.Value)
	}
	return fmt.Sprintf("row %d (id %s): invalid amount %q", e.Row, e.ID, e.Value)
}

// IsInputError reports whether err means the uploaded file itself is unusable.
func IsInputError(err error) bool {
	var mc MissingColumnError
	var dc DuplicateColumnError
	var ia InvalidAmountError
	var pe *csv.ParseError
	return errors.Is(err, ErrEmptyInput) ||
		errors.As(err, &mc) ||
		errors.As(err, &dc) ||
		errors.As(err, &ia) ||
		errors.As(err, &pe)
}
