package cleaning

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord marks a batch element the pipeline cannot treat as a job record.
var ErrInvalidRecord = errors.New("invalid job record")

// RecordError reports a structurally invalid record. It aborts the whole batch.
type RecordError struct {
	Index   int
	Field   string
	Message string
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid record at index %d: field %q: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid record at index %d: %s", e.Index, e.Message)
}

func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}
