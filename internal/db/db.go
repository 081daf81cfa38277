// Package db provides storage for requirement sets and analyses, backed by
// PostgreSQL or by memory.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/hr-insights/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS requirement_sets (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	content    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS analyses (
	id                 UUID PRIMARY KEY,
	requirement_set_id TEXT NOT NULL,
	subject            TEXT NOT NULL DEFAULT '',
	overall_score      INTEGER NOT NULL,
	result             JSONB NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS analyses_requirement_set_idx
	ON analyses (requirement_set_id, created_at DESC);
`

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

// Ping checks the database connection
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema creates the tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ListRequirementSets returns every requirement set ordered by id
func (db *DB) ListRequirementSets(ctx context.Context) ([]types.RequirementSet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT content, updated_at FROM requirement_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirement sets: %w", err)
	}
	defer rows.Close()

	sets := []types.RequirementSet{}
	for rows.Next() {
		set, err := scanRequirementSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requirement sets: %w", err)
	}
	return sets, nil
}

// GetRequirementSet retrieves a requirement set by id
func (db *DB) GetRequirementSet(ctx context.Context, id string) (*types.RequirementSet, error) {
	set, err := scanRequirementSet(db.pool.QueryRow(ctx,
		`SELECT content, updated_at FROM requirement_sets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return set, nil
}

func scanRequirementSet(row pgx.Row) (*types.RequirementSet, error) {
	var (
		content   []byte
		updatedAt time.Time
	)
	if err := row.Scan(&content, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan requirement set: %w", err)
	}
	var set types.RequirementSet
	if err := json.Unmarshal(content, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirement set: %w", err)
	}
	set.UpdatedAt = updatedAt
	return &set, nil
}

// SaveRequirementSet inserts or replaces a requirement set and sets its UpdatedAt
func (db *DB) SaveRequirementSet(ctx context.Context, set *types.RequirementSet) error {
	content, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal requirement set: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO requirement_sets (id, title, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET title = $2, content = $3, updated_at = NOW()
		 RETURNING updated_at`,
		set.ID, set.Title, content,
	).Scan(&set.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save requirement set %s: %w", set.ID, err)
	}
	return nil
}

// DeleteRequirementSet removes a requirement set and reports whether it existed
func (db *DB) DeleteRequirementSet(ctx context.Context, id string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM requirement_sets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete requirement set %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SaveAnalysis stores an analysis and sets its CreatedAt
func (db *DB) SaveAnalysis(ctx context.Context, analysis *Analysis) error {
	result, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, requirement_set_id, subject, overall_score, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		analysis.ID, analysis.RequirementSetID, analysis.Subject, analysis.OverallScore, result,
	).Scan(&analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the newest analyses for a requirement set
func (db *DB) ListAnalyses(ctx context.Context, requirementSetID string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultAnalysesLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, requirement_set_id, subject, overall_score, result, created_at
		 FROM analyses WHERE requirement_set_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		requirementSetID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		var (
			a      Analysis
			result []byte
		)
		if err := rows.Scan(&a.ID, &a.RequirementSetID, &a.Subject, &a.OverallScore, &result, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal(result, &a.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}
