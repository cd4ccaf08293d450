package results

import (
	"fmt"
	"strings"
	"time"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// QueryParams is a result query as typed by a user, on the command line or in
// a URL. Build validates it into a Query; every field is optional.
type QueryParams struct {
	From      string
	To        string
	SortKey   string
	SortDir   string
	Statuses  []string
	ScanTypes []string
	MinTier   string
	Target    string
}

// Build parses the params. Any malformed value yields an error wrapping
// schemas.ErrInvalidArgument, so a bad request never reaches the engine.
func (p QueryParams) Build() (Query, error) {
	q := NewQuery()

	spec, err := schemas.ParseSortSpec(p.SortKey, p.SortDir)
	if err != nil {
		return Query{}, err
	}
	q.Sort = spec

	if p.From != "" || p.To != "" {
		rng := &schemas.DateRange{}
		if rng.From, err = parseBound("from", p.From); err != nil {
			return Query{}, err
		}
		if rng.To, err = parseBound("to", p.To); err != nil {
			return Query{}, err
		}
		q.Range = rng
	}

	if statuses := splitList(p.Statuses); len(statuses) > 0 {
		parsed := make([]schemas.ScanStatus, 0, len(statuses))
		for _, s := range statuses {
			st, err := ParseScanStatus(s)
			if err != nil {
				return Query{}, err
			}
			parsed = append(parsed, st)
		}
		q.Predicates = append(q.Predicates, WithStatus(parsed...))
	}

	if types := splitList(p.ScanTypes); len(types) > 0 {
		parsed := make([]schemas.ScanType, 0, len(types))
		for _, s := range types {
			st, err := ParseScanType(s)
			if err != nil {
				return Query{}, err
			}
			parsed = append(parsed, st)
		}
		q.Predicates = append(q.Predicates, WithScanType(parsed...))
	}

	if p.MinTier != "" {
		tier, err := schemas.ParseRiskTier(p.MinTier)
		if err != nil {
			return Query{}, err
		}
		q.Predicates = append(q.Predicates, WithMinTier(tier))
	}

	if target := strings.TrimSpace(p.Target); target != "" {
		q.Predicates = append(q.Predicates, WithTargetContains(target))
	}
	return q, nil
}

// ParseTime accepts RFC 3339 timestamps and bare dates (midnight UTC).
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid time %q (want RFC 3339 or YYYY-MM-DD)", schemas.ErrInvalidArgument, s)
}

// ParseScanStatus accepts a status name case-insensitively.
func ParseScanStatus(s string) (schemas.ScanStatus, error) {
	for _, st := range []schemas.ScanStatus{
		schemas.ScanStatusCompleted, schemas.ScanStatusPending, schemas.ScanStatusRunning, schemas.ScanStatusError,
	} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scan status %q", schemas.ErrInvalidArgument, s)
}

// ParseScanType accepts a scan profile name case-insensitively.
func ParseScanType(s string) (schemas.ScanType, error) {
	for _, t := range []schemas.ScanType{
		schemas.ScanTypeQuick, schemas.ScanTypeFull, schemas.ScanTypeStealth, schemas.ScanTypeCustom,
	} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scan type %q", schemas.ErrInvalidArgument, s)
}

func parseBound(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}

// splitList flattens repeated and comma separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
