package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobclean/internal/types"
)

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// IsValidRunStatus reports whether status is a known run status
func IsValidRunStatus(status string) bool {
	switch status {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
		return true
	default:
		return false
	}
}

// Run represents a cleaning run record
type Run struct {
	ID          uuid.UUID    `json:"id"`
	Inputs      []string     `json:"inputs"`
	Status      string       `json:"status"`
	Stats       *types.Stats `json:"stats,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// StoredJob is a cleaned job as persisted in cleaned_jobs
type StoredJob struct {
	ID               int64           `json:"id"`
	Fingerprint      string          `json:"fingerprint"`
	RunID            uuid.UUID       `json:"run_id"`
	Title            string          `json:"title"`
	Company          string          `json:"company"`
	Location         string          `json:"location"`
	OriginalLocation *string         `json:"original_location,omitempty"`
	SalaryMin        *float64        `json:"salary_min,omitempty"`
	SalaryMax        *float64        `json:"salary_max,omitempty"`
	SalaryCurrency   *string         `json:"salary_currency,omitempty"`
	SalaryPeriod     *string         `json:"salary_period,omitempty"`
	Payload          types.JobRecord `json:"payload"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SaveResult counts what SaveCleanedJobs did
type SaveResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
