package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// MemoryStore serves a fixed, validated collection. Callers receive deep copies,
// so the stored records cannot be modified through anything it returns.
type MemoryStore struct {
	results   []schemas.ScanResult
	schedules []schemas.ScheduledScan
}

var _ schemas.ResultSource = (*MemoryStore)(nil)

// NewMemoryStore validates results and takes a private copy of both collections.
func NewMemoryStore(results []schemas.ScanResult, schedules []schemas.ScheduledScan) (*MemoryStore, error) {
	if err := schemas.ValidateCollection(results); err != nil {
		return nil, err
	}
	return &MemoryStore{
		results:   cloneResults(results),
		schedules: slices.Clone(schedules),
	}, nil
}

func (m *MemoryStore) ListScanResults(ctx context.Context) ([]schemas.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneResults(m.results), nil
}

func (m *MemoryStore) GetScanResult(ctx context.Context, id string) (*schemas.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, r := range m.results {
		if r.ID == id {
			found := r.Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: scan result %q", schemas.ErrNotFound, id)
}

func (m *MemoryStore) ListScheduledScans(ctx context.Context) ([]schemas.ScheduledScan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := slices.Clone(m.schedules)
	if out == nil {
		out = []schemas.ScheduledScan{}
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneResults(results []schemas.ScanResult) []schemas.ScanResult {
	out := make([]schemas.ScanResult, len(results))
	for i, r := range results {
		out[i] = r.Clone()
	}
	return out
}
