package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one cleaning run and the output it produced
type Metadata struct {
	RunID       string   `json:"run_id"`
	Timestamp   string   `json:"timestamp"` // RFC3339 format
	Inputs      []string `json:"inputs"`
	Hash        string   `json:"hash"` // SHA256 hex digest of the cleaned JSON
	InputCount  int      `json:"input_count"`
	OutputCount int      `json:"output_count"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(runID string, cleanedJSON []byte, inputs []string, inputCount, outputCount int) *Metadata {
	return &Metadata{
		RunID:       runID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Inputs:      append([]string{}, inputs...),
		Hash:        computeHash(cleanedJSON),
		InputCount:  inputCount,
		OutputCount: outputCount,
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
