package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobclean/internal/schemas"
	"github.com/jonathan/jobclean/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseBatch_Array(t *testing.T) {
	records, err := ParseBatch([]byte(`[
		{"title": "Engineer", "company": "Acme", "location": "NYC", "salary": "$100k", "remote": true},
		{"title": "Analyst", "company": "Beta", "location": null}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Engineer", records[0][types.FieldTitle])
	assert.Equal(t, true, records[0]["remote"])
	assert.Nil(t, records[1][types.FieldLocation])
	assert.Contains(t, records[1], types.FieldLocation)
}

func TestParseBatch_Envelope(t *testing.T) {
	records, err := ParseBatch([]byte(`{"source": "indeed", "jobs": [{"title": "Engineer", "company": "Acme", "location": "NYC"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0][types.FieldCompany])
}

func TestParseBatch_EmptyBatches(t *testing.T) {
	for _, input := range []string{`[]`, `{"jobs": []}`, "  \n[]\n"} {
		records, err := ParseBatch([]byte(input))
		require.NoError(t, err, input)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestParseBatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSchema bool
	}{
		{name: "empty", input: ""},
		{name: "malformed", input: `[{"title": `},
		{name: "numeric title", input: `[{"title": 1, "company": "Acme", "location": "NYC"}]`, wantSchema: true},
		{name: "string element", input: `["Engineer"]`, wantSchema: true},
		{name: "null element", input: `[null]`, wantSchema: true},
		{name: "object without jobs", input: `{"title": "Engineer"}`, wantSchema: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBatch([]byte(tt.input))
			require.Error(t, err)

			var validationErr *schemas.ValidationError
			assert.Equal(t, tt.wantSchema, errors.As(err, &validationErr))
		})
	}
}

func TestLoadBatch(t *testing.T) {
	path := writeFile(t, "jobs.json", `[{"title": "Engineer", "company": "Acme", "location": "NYC"}]`)

	records, err := LoadBatch(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadBatch_NotFound(t *testing.T) {
	_, err := LoadBatch(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "file not found", loadErr.Message)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadBatch_InvalidContent(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"title": 42}]`)

	_, err := LoadBatch(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	assert.Contains(t, err.Error(), "invalid job batch")

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoadError_Error(t *testing.T) {
	withCause := &LoadError{Path: "a.json", Message: "bad", Cause: errors.New("boom")}
	assert.Equal(t, "failed to load batch a.json: bad: boom", withCause.Error())

	noCause := &LoadError{Path: "a.json", Message: "bad"}
	assert.Equal(t, "failed to load batch a.json: bad", noCause.Error())
}
