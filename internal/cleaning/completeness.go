package cleaning

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobclean/internal/types"
)

// requiredFields must all be present and non-blank for a record to be kept
var requiredFields = [...]string{types.FieldTitle, types.FieldCompany, types.FieldLocation}

// RequiredFields returns the required field names in check order
func RequiredFields() []string {
	return append([]string(nil), requiredFields[:]...)
}

// MissingFields lists the required fields that are absent or blank after trimming.
func MissingFields(rec types.JobRecord) []string {
	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(fieldString(rec[field])) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsComplete reports whether every required field carries a value
func IsComplete(rec types.JobRecord) bool {
	return len(MissingFields(rec)) == 0
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func (p *Processor) removeIncomplete(records []types.JobRecord) ([]types.JobRecord, int) {
	complete := make([]types.JobRecord, 0, len(records))
	incomplete := 0

	for _, rec := range records {
		if missing := MissingFields(rec); len(missing) > 0 {
			incomplete++
			p.logger.Debug("incomplete entry removed", "missing_fields", missing)
			continue
		}
		complete = append(complete, rec)
	}

	p.logger.Info("removed incomplete entries", "count", incomplete)
	return complete, incomplete
}

// FilterIncomplete drops records missing a required field and returns the
// survivors plus the number dropped.
func FilterIncomplete(records []types.JobRecord) ([]types.JobRecord, int) {
	return NewProcessor().removeIncomplete(records)
}
