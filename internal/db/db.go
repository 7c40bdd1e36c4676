// Package db provides PostgreSQL persistence for pipeline runs and their
// per-stage artifacts. Persistence is best-effort: callers treat failures as
// warnings and the pipeline never depends on a database being present.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stage names under which artifacts are stored.
const (
	StageUnderstanding = "understanding"
	StageClarification = "clarification"
	StageGeneration    = "generation"
	StageEnhancement   = "enhancement"
	StageQA            = "qa"
	StageFormatting    = "formatting"
)

// Run is one pipeline run record.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	RawText     string     `json:"raw_text"`
	TestMode    bool       `json:"test_mode"`
	Status      string     `json:"status"`
	FailedStage string     `json:"failed_stage,omitempty"`
	Issues      []string   `json:"issues,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the runs and artifacts tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
    id UUID PRIMARY KEY,
    raw_text TEXT NOT NULL,
    test_mode BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL DEFAULT 'running',
    failed_stage TEXT,
    issues JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS artifacts (
    run_id UUID NOT NULL REFERENCES pipeline_runs(id) ON DELETE CASCADE,
    stage TEXT NOT NULL,
    content JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (run_id, stage)
);
`

// CreateRun records the start of a pipeline run
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, rawText string, testMode bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, raw_text, test_mode, status)
		 VALUES ($1, $2, $3, 'running')`,
		runID, rawText, testMode,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun records the terminal state of a pipeline run
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, failedStage string, issues []string) error {
	var issuesJSON []byte
	if len(issues) > 0 {
		var err error
		issuesJSON, err = json.Marshal(issues)
		if err != nil {
			return fmt.Errorf("failed to marshal issues: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE pipeline_runs
		 SET status = $1, failed_stage = NULLIF($2, ''), issues = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, failedStage, issuesJSON, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a pipeline stage
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, stage, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, stage) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", stage, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and stage
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, stage string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND stage = $2`,
		runID, stage,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", stage, err)
	}
	return content, nil
}

// GetRun retrieves a run record by ID. Returns nil when no such run exists.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var r Run
	var issuesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, raw_text, test_mode, status, COALESCE(failed_stage, ''), issues, created_at, completed_at
		 FROM pipeline_runs WHERE id = $1`,
		runID,
	).Scan(&r.ID, &r.RawText, &r.TestMode, &r.Status, &r.FailedStage, &issuesJSON, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &r.Issues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal issues: %w", err)
		}
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, raw_text, test_mode, status, COALESCE(failed_stage, ''), issues, created_at, completed_at
		 FROM pipeline_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var issuesJSON []byte
		if err := rows.Scan(&r.ID, &r.RawText, &r.TestMode, &r.Status, &r.FailedStage, &issuesJSON, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if len(issuesJSON) > 0 {
			if err := json.Unmarshal(issuesJSON, &r.Issues); err != nil {
				return nil, fmt.Errorf("failed to unmarshal issues: %w", err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
