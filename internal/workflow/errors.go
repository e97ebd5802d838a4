package workflow

import "fmt"

// LookupError wraps a catalog failure with the series being processed.
type LookupError struct {
	Series string
	ASIN   string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("look up next book in %q (after %s): %v", e.Series, e.ASIN, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
