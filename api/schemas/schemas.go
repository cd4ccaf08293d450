package schemas

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ScanType is the scanning profile a scan was launched with.
type ScanType string

const (
	ScanTypeQuick   ScanType = "Quick"
	ScanTypeFull    ScanType = "Full"
	ScanTypeStealth ScanType = "Stealth"
	ScanTypeCustom  ScanType = "Custom"
)

// Valid reports whether the scan type is one of the known profiles.
func (t ScanType) Valid() bool {
	switch t {
	case ScanTypeQuick, ScanTypeFull, ScanTypeStealth, ScanTypeCustom:
		return true
	}
	return false
}

// ScanStatus is the lifecycle state of a scan. It is informational only to the
// query engine, apart from the active-scan count on the dashboard.
type ScanStatus string

const (
	ScanStatusCompleted ScanStatus = "Completed"
	ScanStatusPending   ScanStatus = "Pending"
	ScanStatusRunning   ScanStatus = "Running"
	ScanStatusError     ScanStatus = "Error"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ScanStatus) Valid() bool {
	switch s {
	case ScanStatusCompleted, ScanStatusPending, ScanStatusRunning, ScanStatusError:
		return true
	}
	return false
}

// Active reports whether the scan is queued or in progress.
func (s ScanStatus) Active() bool {
	return s == ScanStatusPending || s == ScanStatusRunning
}

// VulnerabilitySeverity is the severity reported by the scanner for a single CVE.
// It is distinct from RiskTier, which is derived from the aggregate risk score.
type VulnerabilitySeverity string

const (
	VulnSeverityCritical      VulnerabilitySeverity = "Critical"
	VulnSeverityHigh          VulnerabilitySeverity = "High"
	VulnSeverityMedium        VulnerabilitySeverity = "Medium"
	VulnSeverityLow           VulnerabilitySeverity = "Low"
	VulnSeverityInformational VulnerabilitySeverity = "Informational"
)

// Vulnerability is a single CVE observed on the target.
type Vulnerability struct {
	CVE         string                `json:"cve" yaml:"cve"`
	Severity    VulnerabilitySeverity `json:"severity" yaml:"severity"`
	Description string                `json:"description" yaml:"description"`
}

// OpenPort is a listening port and the service fingerprinted on it.
type OpenPort struct {
	Port    int    `json:"port" yaml:"port"`
	Service string `json:"service" yaml:"service"`
}

// Findings is the raw scanner payload attached to a result. The query engine
// treats it as opaque; only the raw text matters, for summarization eligibility.
type Findings struct {
	Raw             string          `json:"raw" yaml:"raw"`
	OpenPorts       []OpenPort      `json:"open_ports" yaml:"open_ports"`
	OSGuess         string          `json:"os_guess" yaml:"os_guess"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities" yaml:"vulnerabilities"`
}

// ScanResult is a single recorded scan. Values are immutable once created; the
// engine never modifies a ScanResult it is handed.
type ScanResult struct {
	ID       string     `json:"id" yaml:"id"`
	Target   string     `json:"target" yaml:"target"` // IP, domain or CIDR.
	ScanType ScanType   `json:"scan_type" yaml:"scan_type"`
	Agent    string     `json:"agent" yaml:"agent"`
	Status   ScanStatus `json:"status" yaml:"status"`
	// RiskScore is in [0,100]. Zero doubles as "not yet assessed" for scans that
	// have not completed; only the presentation layer distinguishes the two.
	RiskScore int `json:"risk_score" yaml:"risk_score"`
	// Summary is the pre-existing, human written summary used when the
	// summarizer cannot run.
	Summary   string    `json:"summary" yaml:"summary"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Findings  Findings  `json:"findings" yaml:"findings"`
}

// Clone returns a copy of r that shares no slice storage with it.
func (r ScanResult) Clone() ScanResult {
	r.Findings.OpenPorts = slices.Clone(r.Findings.OpenPorts)
	r.Findings.Vulnerabilities = slices.Clone(r.Findings.Vulnerabilities)
	return r
}

// HasRawFindings reports whether the result carries raw scanner output that can
// be handed to the summarizer.
func (r ScanResult) HasRawFindings() bool {
	return strings.TrimSpace(r.Findings.Raw) != ""
}

// Validate checks the invariants every source must uphold before a result is
// handed to the query engine.
func (r ScanResult) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: scan result id is empty", ErrInvalidArgument)
	}
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return fmt.Errorf("%w: scan result %s has risk score %d outside [0,100]", ErrInvalidArgument, r.ID, r.RiskScore)
	}
	if !r.ScanType.Valid() {
		return fmt.Errorf("%w: scan result %s has unknown scan type %q", ErrInvalidArgument, r.ID, r.ScanType)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: scan result %s has unknown status %q", ErrInvalidArgument, r.ID, r.Status)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: scan result %s has no creation time", ErrInvalidArgument, r.ID)
	}
	return nil
}

// ValidateCollection validates every result and enforces id uniqueness across
// the collection.
func ValidateCollection(results []ScanResult) error {
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate scan result id %q", ErrInvalidArgument, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// ScanFrequency is how often a scheduled scan recurs.
type ScanFrequency string

const (
	FrequencyDaily   ScanFrequency = "Daily"
	FrequencyWeekly  ScanFrequency = "Weekly"
	FrequencyMonthly ScanFrequency = "Monthly"
)

// ScheduledScan is a recurring scan definition. Schedules are exposed read-only.
type ScheduledScan struct {
	ID        string        `json:"id" yaml:"id"`
	Target    string        `json:"target" yaml:"target"`
	ScanType  ScanType      `json:"scan_type" yaml:"scan_type"`
	Frequency ScanFrequency `json:"frequency" yaml:"frequency"`
	NextRun   time.Time     `json:"next_run" yaml:"next_run"`
	Enabled   bool          `json:"enabled" yaml:"enabled"`
}
