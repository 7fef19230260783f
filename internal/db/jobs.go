package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobclean/internal/cleaning"
	"github.com/jonathan/jobclean/internal/retry"
	"github.com/jonathan/jobclean/internal/types"
)

// jobRow is the column form of one cleaned record
type jobRow struct {
	Fingerprint      string
	Title            string
	Company          string
	Location         string
	OriginalLocation *string
	SalaryMin        *float64
	SalaryMax        *float64
	SalaryCurrency   *string
	SalaryPeriod     *string
	Payload          []byte
}

// newJobRow maps a cleaned record onto table columns. The fingerprint is
// taken from the cleaned values, so listings stored by earlier runs under a
// different raw spelling of the same location are recognised.
func newJobRow(rec types.JobRecord) (jobRow, error) {
	fp, err := cleaning.Fingerprint(rec)
	if err != nil {
		return jobRow{}, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return jobRow{}, fmt.Errorf("failed to marshal job payload: %w", err)
	}

	title, _ := rec.Text(types.FieldTitle)
	company, _ := rec.Text(types.FieldCompany)
	location, _ := rec.Text(types.FieldLocation)

	return jobRow{
		Fingerprint:      fp,
		Title:            title,
		Company:          company,
		Location:         location,
		OriginalLocation: stringField(rec, types.FieldOriginalLocation),
		SalaryMin:        floatField(rec, types.FieldSalaryMin),
		SalaryMax:        floatField(rec, types.FieldSalaryMax),
		SalaryCurrency:   stringField(rec, types.FieldSalaryCurrency),
		SalaryPeriod:     stringField(rec, types.FieldSalaryPeriod),
		Payload:          payload,
	}, nil
}

// stringField returns nil if the field is absent, empty or not a string
func stringField(rec types.JobRecord, field string) *string {
	s, ok := rec[field].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func floatField(rec types.JobRecord, field string) *float64 {
	var f float64
	switch v := rec[field].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

// SaveCleanedJobs stores cleaned records for a run in one transaction.
// Records whose fingerprint is already stored are skipped, not updated.
func (db *DB) SaveCleanedJobs(ctx context.Context, runID uuid.UUID, records []types.JobRecord) (SaveResult, error) {
	rows := make([]jobRow, 0, len(records))
	for i, rec := range records {
		row, err := newJobRow(rec)
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to prepare job %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	var result SaveResult
	err := retry.Do(ctx, db.retryPolicy(), func(ctx context.Context) error {
		var err error
		result, err = db.insertJobs(ctx, runID, rows)
		return err
	})
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to save cleaned jobs: %w", err)
	}
	return result, nil
}

func (db *DB) insertJobs(ctx context.Context, runID uuid.UUID, rows []jobRow) (SaveResult, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			db.logger.Warn("rollback failed", "error", rErr)
		}
	}()

	var result SaveResult
	for _, row := range rows {
		tag, err := tx.Exec(ctx,
			`INSERT INTO cleaned_jobs (fingerprint, run_id, title, company, location, original_location,
			                           salary_min, salary_max, salary_currency, salary_period, payload)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (fingerprint) DO NOTHING`,
			row.Fingerprint, runID, row.Title, row.Company, row.Location, row.OriginalLocation,
			row.SalaryMin, row.SalaryMax, row.SalaryCurrency, row.SalaryPeriod, row.Payload,
		)
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to insert job %s: %w", row.Fingerprint, err)
		}
		if tag.RowsAffected() == 0 {
			result.Skipped++
		} else {
			result.Inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return SaveResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// ListJobs returns the jobs first stored by a run, in insertion order
func (db *DB) ListJobs(ctx context.Context, runID uuid.UUID) ([]StoredJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, fingerprint, run_id, title, company, location, original_location,
		        salary_min, salary_max, salary_currency, salary_period, payload, created_at
		 FROM cleaned_jobs
		 WHERE run_id = $1
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []StoredJob
	for rows.Next() {
		var job StoredJob
		var payload []byte
		if err := rows.Scan(&job.ID, &job.Fingerprint, &job.RunID, &job.Title, &job.Company,
			&job.Location, &job.OriginalLocation, &job.SalaryMin, &job.SalaryMax,
			&job.SalaryCurrency, &job.SalaryPeriod, &payload, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := json.Unmarshal(payload, &job.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
