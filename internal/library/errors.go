package library

import (
	"errors"
	"fmt"
)

// ErrMissingColumn reports an export whose header lacks a required column.
var ErrMissingColumn = errors.New("library export missing column")

// MalformedRecordError describes a library row that cannot be turned into a
// Book. It is fatal for the whole parse.
type MalformedRecordError struct {
	Line  int
	ASIN  string
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	asin := e.ASIN
	if asin == "" {
		asin = "unknown asin"
	}
	return fmt.Sprintf("library row %d (%s): invalid %s %q: %v", e.Line, asin, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

type fieldError struct {
	field string
	value string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.field, e.value, e.err)
}

func (e *fieldError) Unwrap() error {
	return e.err
}
