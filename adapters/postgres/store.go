// Package postgres archives gathered datasets and computed results so
// comparison runs can be tracked across sessions. The pipeline never
// depends on it; the CLI wires it only when DATABASE_URL is set.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"simout/domain/simdata"
	"simout/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	outputs JSONB NOT NULL,
	summary_names JSONB NOT NULL,
	observations INT NOT NULL,
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS analyses (
	id BIGSERIAL PRIMARY KEY,
	dataset_id TEXT NOT NULL REFERENCES datasets(id),
	alpha DOUBLE PRECISION NOT NULL,
	stats JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS comparisons (
	id TEXT PRIMARY KEY,
	names JSONB NOT NULL,
	alpha DOUBLE PRECISION NOT NULL,
	p_values JSONB NOT NULL,
	fails INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

// resultStore implements ports.ResultStore on Postgres
type resultStore struct {
	db *sqlx.DB
}

// NewResultStore connects and bootstraps the schema
func NewResultStore(databaseURL string) (ports.ResultStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to results database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return &resultStore{db: db}, nil
}

// SaveDataset inserts one gathered dataset
func (s *resultStore) SaveDataset(ctx context.Context, ds *simdata.Dataset) error {
	outputs, err := json.Marshal(ds.Outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}
	summaries, err := json.Marshal(ds.SummaryNames)
	if err != nil {
		return fmt.Errorf("failed to marshal summary names: %w", err)
	}
	data, err := json.Marshal(ds.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	query := `INSERT INTO datasets (id, name, outputs, summary_names, observations, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = s.db.ExecContext(ctx, query,
		ds.ID.String(), ds.Name, outputs, summaries, ds.NumObservations(), data, ds.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	return nil
}

// SaveAnalysis inserts one distributional analysis
func (s *resultStore) SaveAnalysis(ctx context.Context, a *simdata.Analysis) error {
	stats, err := json.Marshal(a.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `INSERT INTO analyses (dataset_id, alpha, stats) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, a.DatasetID.String(), a.Alpha, stats); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// SaveComparison inserts one comparison outcome
func (s *resultStore) SaveComparison(ctx context.Context, c *simdata.Comparison) error {
	names, err := json.Marshal(c.Names)
	if err != nil {
		return fmt.Errorf("failed to marshal names: %w", err)
	}
	pvals, err := json.Marshal(c.PValues)
	if err != nil {
		return fmt.Errorf("failed to marshal p-values: %w", err)
	}

	query := `INSERT INTO comparisons (id, names, alpha, p_values, fails, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.ExecContext(ctx, query,
		c.ID.String(), names, c.Alpha, pvals, c.Fails, c.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save comparison: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *resultStore) Close() error {
	return s.db.Close()
}
