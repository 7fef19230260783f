// Package ingestion loads job batches from disk and writes cleaning results.
package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobclean/internal/schemas"
	"github.com/jonathan/jobclean/internal/types"
)

// LoadError reports a batch file that could not be read or decoded
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load batch %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load batch %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// batchEnvelope is the object form of a batch file. Keys other than jobs are ignored.
type batchEnvelope struct {
	Jobs []types.JobRecord `json:"jobs"`
}

// LoadBatch reads a batch file, validates it against the job batch schema and
// decodes its records.
func LoadBatch(path string) ([]types.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	records, err := ParseBatch(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid job batch", Cause: err}
	}
	return records, nil
}

// ParseBatch decodes a JSON array of records or a {"jobs": [...]} envelope.
func ParseBatch(data []byte) ([]types.JobRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("malformed JSON")
	}

	if err := schemas.ValidateJobBatch(trimmed); err != nil {
		return nil, err
	}

	if trimmed[0] == '{' {
		var env batchEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode jobs envelope: %w", err)
		}
		return nonNil(env.Jobs), nil
	}

	var records []types.JobRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to decode jobs array: %w", err)
	}
	return nonNil(records), nil
}

func nonNil(records []types.JobRecord) []types.JobRecord {
	if records == nil {
		return []types.JobRecord{}
	}
	return records
}
