package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// Document is the on-disk layout read by LoadFile.
type Document struct {
	ScanResults    []schemas.ScanResult    `json:"scan_results"`
	ScheduledScans []schemas.ScheduledScan `json:"scheduled_scans"`
}

// LoadFile reads a JSON Document from path ("~" is expanded) and serves it from
// memory. Any record that breaks the ScanResult invariants rejects the whole file.
func LoadFile(path string, logger *zap.Logger) (*MemoryStore, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand data file path '%s': %w", path, err)
	}

	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file '%s': %w", expanded, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode data file '%s': %v", schemas.ErrInvalidArgument, expanded, err)
	}

	m, err := NewMemoryStore(doc.ScanResults, doc.ScheduledScans)
	if err != nil {
		return nil, fmt.Errorf("data file '%s': %w", expanded, err)
	}

	logger.Named("store").Info("Loaded scan data file.",
		zap.String("path", expanded),
		zap.Int("scan_results", len(doc.ScanResults)),
		zap.Int("scheduled_scans", len(doc.ScheduledScans)),
	)
	return m, nil
}
