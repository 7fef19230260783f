package db

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cleaning_runs (
    id           UUID PRIMARY KEY,
    inputs       TEXT[] NOT NULL DEFAULT '{}',
    status       TEXT NOT NULL,
    stats        JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS cleaned_jobs (
    id                BIGSERIAL PRIMARY KEY,
    fingerprint       TEXT NOT NULL UNIQUE,
    run_id            UUID NOT NULL REFERENCES cleaning_runs(id) ON DELETE CASCADE,
    title             TEXT NOT NULL,
    company           TEXT NOT NULL,
    location          TEXT NOT NULL,
    original_location TEXT,
    salary_min        DOUBLE PRECISION,
    salary_max        DOUBLE PRECISION,
    salary_currency   TEXT,
    salary_period     TEXT,
    payload           JSONB NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cleaned_jobs_run_id ON cleaned_jobs(run_id);
`
