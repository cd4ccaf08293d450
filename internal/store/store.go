// Package store provides the ResultSource implementations: an in-memory source,
// a JSON document on disk and a read-only PostgreSQL source.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DBPool is an interface that abstracts the pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const (
	sqlListScanResults = `
        SELECT id, target, scan_type, COALESCE(agent, ''), status, risk_score, COALESCE(summary, ''), created_at, findings
        FROM scan_results
        ORDER BY created_at DESC;
    `
	sqlGetScanResult = `
        SELECT id, target, scan_type, COALESCE(agent, ''), status, risk_score, COALESCE(summary, ''), created_at, findings
        FROM scan_results
        WHERE id = $1;
    `
	sqlListScheduledScans = `
        SELECT id, target, scan_type, frequency, next_run, enabled
        FROM scheduled_scans
        ORDER BY next_run ASC;
    `
)

// PostgresStore reads scan results from PostgreSQL. It never writes.
type PostgresStore struct {
	pool DBPool
	log  *zap.Logger
}

var _ schemas.ResultSource = (*PostgresStore)(nil)

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*PostgresStore, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// Connect opens a pgx pool for url and wraps it in a PostgresStore.
func Connect(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (*PostgresStore, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	s, err := New(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// ListScanResults returns every stored result, newest first. The whole set is
// validated before it is returned.
func (s *PostgresStore) ListScanResults(ctx context.Context) ([]schemas.ScanResult, error) {
	rows, err := s.pool.Query(ctx, sqlListScanResults)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan results: %w", err)
	}
	defer rows.Close()

	results := []schemas.ScanResult{}
	for rows.Next() {
		r, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	if err := schemas.ValidateCollection(results); err != nil {
		s.log.Error("Stored scan results failed validation.", zap.Error(err))
		return nil, err
	}
	s.log.Debug("Loaded scan results.", zap.Int("count", len(results)))
	return results, nil
}

// GetScanResult returns one result by id, or an error wrapping schemas.ErrNotFound.
func (s *PostgresStore) GetScanResult(ctx context.Context, id string) (*schemas.ScanResult, error) {
	r, err := scanResultRow(s.pool.QueryRow(ctx, sqlGetScanResult, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: scan result %q", schemas.ErrNotFound, id)
		}
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListScheduledScans returns the configured schedules, soonest first.
func (s *PostgresStore) ListScheduledScans(ctx context.Context) ([]schemas.ScheduledScan, error) {
	rows, err := s.pool.Query(ctx, sqlListScheduledScans)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled scans: %w", err)
	}
	defer rows.Close()

	scans := []schemas.ScheduledScan{}
	for rows.Next() {
		var sc schemas.ScheduledScan
		var scanType, frequency string
		if err := rows.Scan(&sc.ID, &sc.Target, &scanType, &frequency, &sc.NextRun, &sc.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled scan row: %w", err)
		}
		sc.ScanType = schemas.ScanType(scanType)
		sc.Frequency = schemas.ScanFrequency(frequency)
		scans = append(scans, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return scans, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// scanResultRow decodes one scan_results row. Findings are stored as JSONB and
// may be NULL; agent and summary are coalesced to empty strings by the queries.
func scanResultRow(row pgx.Row) (schemas.ScanResult, error) {
	var r schemas.ScanResult
	var scanType, status string
	var findings []byte

	err := row.Scan(&r.ID, &r.Target, &scanType, &r.Agent, &status, &r.RiskScore, &r.Summary, &r.CreatedAt, &findings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan scan result row: %w", err)
	}

	r.ScanType = schemas.ScanType(scanType)
	r.Status = schemas.ScanStatus(status)
	if len(findings) > 0 && string(findings) != "null" {
		if err := json.Unmarshal(findings, &r.Findings); err != nil {
			return r, fmt.Errorf("%w: scan result %s has malformed findings: %v", schemas.ErrInvalidArgument, r.ID, err)
		}
	}
	return r, nil
}
