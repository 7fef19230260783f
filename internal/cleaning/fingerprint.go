package cleaning

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jonathan/jobclean/internal/types"
)

// identityFields are the only fields that decide whether two records are the same listing
var identityFields = [...]string{types.FieldTitle, types.FieldCompany, types.FieldLocation}

// Fingerprint returns the SHA-256 hex digest of lower(title)|lower(company)|lower(location).
// Missing fields count as empty strings. A non-string identity field is an error.
func Fingerprint(rec types.JobRecord) (string, error) {
	fp, _, err := fingerprint(rec)
	return fp, err
}

func fingerprint(rec types.JobRecord) (fp string, badField string, err error) {
	parts := make([]string, 0, len(identityFields))
	for _, field := range identityFields {
		value, ok := rec.Text(field)
		if !ok {
			return "", field, fmt.Errorf("field %q holds %T, want string", field, rec[field])
		}
		parts = append(parts, strings.ToLower(value))
	}
	return HashSignature(strings.Join(parts, "|")), "", nil
}

// HashSignature hashes an identity signature string
func HashSignature(signature string) string {
	hash := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(hash[:])
}

// removeDuplicates keeps the first record of each fingerprint, in input order.
func (p *Processor) removeDuplicates(records []types.JobRecord) ([]types.JobRecord, int, error) {
	seen := make(map[string]struct{}, len(records))
	unique := make([]types.JobRecord, 0, len(records))
	duplicates := 0

	for i, rec := range records {
		if rec == nil {
			return nil, duplicates, &RecordError{Index: i, Message: "record is nil"}
		}

		fp, field, err := fingerprint(rec)
		if err != nil {
			return nil, duplicates, &RecordError{Index: i, Field: field, Message: fmt.Sprintf("holds %T, want string", rec[field])}
		}

		if _, dup := seen[fp]; dup {
			duplicates++
			p.logger.Debug("duplicate found",
				"title", rec[types.FieldTitle],
				"company", rec[types.FieldCompany],
				"fingerprint", fp)
			continue
		}
		seen[fp] = struct{}{}
		unique = append(unique, rec)
	}

	p.logger.Info("removed duplicate entries", "count", duplicates)
	return unique, duplicates, nil
}

// Deduplicate drops every record whose fingerprint was already seen earlier in
// the batch and returns the survivors plus the number dropped.
func Deduplicate(records []types.JobRecord) ([]types.JobRecord, int, error) {
	return NewProcessor().removeDuplicates(records)
}
