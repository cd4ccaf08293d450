package reporting

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/results"
)

// tierColors are the badge colors for each risk tier.
var tierColors = map[schemas.RiskTier]color.Attribute{
	schemas.TierCritical: color.FgRed,
	schemas.TierHigh:     color.FgMagenta,
	schemas.TierMedium:   color.FgYellow,
	schemas.TierLow:      color.FgGreen,
	schemas.TierInfo:     color.FgBlue,
}

var statusColors = map[schemas.ScanStatus]color.Attribute{
	schemas.ScanStatusCompleted: color.FgGreen,
	schemas.ScanStatusRunning:   color.FgCyan,
	schemas.ScanStatusPending:   color.FgYellow,
	schemas.ScanStatusError:     color.FgRed,
}

// tableReporter renders aligned, human readable tables. Every cell in a colored
// column is wrapped, so escape sequences do not skew tabwriter's alignment.
type tableReporter struct {
	writer io.WriteCloser
	buf    *bufio.Writer
	now    time.Time
	color  bool
}

func newTableReporter(w io.WriteCloser, now time.Time, colorize bool) *tableReporter {
	return &tableReporter{writer: w, buf: bufio.NewWriter(w), now: now, color: colorize}
}

func (r *tableReporter) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (r *tableReporter) tabs() *tabwriter.Writer {
	return tabwriter.NewWriter(r.buf, 0, 0, 2, ' ', 0)
}

// scoreCell shows "-" for a zero score, which also stands for "not assessed".
func (r *tableReporter) scoreCell(score int, tier schemas.RiskTier) (string, string) {
	if score == 0 {
		return "-", r.paint(color.FgHiBlack, "-")
	}
	return strconv.Itoa(score), r.paint(tierColors[tier], string(tier))
}

func (r *tableReporter) WriteResults(rs []results.RankedResult) error {
	if len(rs) == 0 {
		_, err := fmt.Fprintln(r.buf, "No scan results match the query.")
		return err
	}

	tw := r.tabs()
	fmt.Fprintln(tw, "ID\tTARGET\tTYPE\tAGENT\tSTATUS\tRISK\tTIER\tCREATED")
	for _, res := range rs {
		score, tier := r.scoreCell(res.RiskScore, res.RiskTier)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			res.ID, res.Target, res.ScanType, res.Agent,
			r.paint(statusColors[res.Status], string(res.Status)),
			score, tier, RelativeAge(r.now, res.CreatedAt))
	}
	return tw.Flush()
}

func (r *tableReporter) WriteResult(res schemas.ScanResult, summary *schemas.ScanSummary) error {
	tier := results.ClassifyRisk(res.RiskScore)
	score, badge := r.scoreCell(res.RiskScore, tier)

	tw := r.tabs()
	fmt.Fprintf(tw, "Scan Report:\t%s\n", res.Target)
	fmt.Fprintf(tw, "ID:\t%s\n", res.ID)
	fmt.Fprintf(tw, "Type:\t%s scan by %s\n", res.ScanType, res.Agent)
	fmt.Fprintf(tw, "Status:\t%s\n", r.paint(statusColors[res.Status], string(res.Status)))
	fmt.Fprintf(tw, "Created:\t%s (%s)\n", res.CreatedAt.Format(time.RFC1123), RelativeAge(r.now, res.CreatedAt))
	fmt.Fprintf(tw, "Risk:\t%s %s\n", score, badge)
	if res.Findings.OSGuess != "" {
		fmt.Fprintf(tw, "OS Guess:\t%s\n", res.Findings.OSGuess)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if summary != nil {
		fmt.Fprintln(r.buf)
		switch {
		case summary.AnalysisFailed:
			fmt.Fprintf(r.buf, "Summary: %s\n", r.paint(color.FgRed, summary.Message))
			fmt.Fprintf(r.buf, "Stored summary: %s\n", summary.KeyFindings)
		case summary.Source == schemas.SummaryGenerated:
			genScore, genBadge := r.scoreCell(summary.RiskScore, summary.RiskTier)
			fmt.Fprintf(r.buf, "Assessed risk: %s %s\n", genScore, genBadge)
			fmt.Fprintf(r.buf, "Key findings: %s\n", summary.KeyFindings)
		default:
			fmt.Fprintf(r.buf, "Summary: %s\n", summary.KeyFindings)
		}
	}

	if len(res.Findings.OpenPorts) > 0 {
		fmt.Fprintln(r.buf)
		tw = r.tabs()
		fmt.Fprintln(tw, "PORT\tSERVICE")
		for _, p := range res.Findings.OpenPorts {
			fmt.Fprintf(tw, "%d\t%s\n", p.Port, p.Service)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(res.Findings.Vulnerabilities) > 0 {
		fmt.Fprintln(r.buf)
		tw = r.tabs()
		fmt.Fprintln(tw, "CVE\tSEVERITY\tDESCRIPTION")
		for _, v := range res.Findings.Vulnerabilities {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", v.CVE, r.paint(tierColors[schemas.RiskTier(v.Severity)], string(v.Severity)), v.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if res.HasRawFindings() {
		fmt.Fprintf(r.buf, "\nRaw findings:\n%s\n", indent(res.Findings.Raw, "  "))
	}
	return nil
}

func (r *tableReporter) WriteDashboard(d schemas.Dashboard) error {
	tw := r.tabs()
	for _, s := range d.Stats {
		change := ""
		if s.Change != nil {
			attr := color.FgGreen
			if strings.HasPrefix(*s.Change, "-") {
				attr = color.FgRed
			}
			change = r.paint(attr, *s.Change+" from last week")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Title, s.Value, change)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.buf, "\nScan activity (last 7 days)")
	tw = r.tabs()
	fmt.Fprintln(tw, "DAY\tSCANS\tNEW RISKS\t")
	for _, b := range d.WeeklySeries {
		bar := strings.Repeat("#", b.ScanCount)
		if b.ElevatedRiskCount > 0 {
			bar += r.paint(color.FgRed, strings.Repeat("!", b.ElevatedRiskCount))
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", b.Day, b.ScanCount, b.ElevatedRiskCount, bar)
	}
	return tw.Flush()
}

func (r *tableReporter) WriteSchedules(s []schemas.ScheduledScan) error {
	if len(s) == 0 {
		_, err := fmt.Fprintln(r.buf, "No scheduled scans.")
		return err
	}

	tw := r.tabs()
	fmt.Fprintln(tw, "ID\tTARGET\tTYPE\tFREQUENCY\tNEXT RUN\tENABLED")
	for _, sc := range s {
		enabled := r.paint(color.FgGreen, "yes")
		if !sc.Enabled {
			enabled = r.paint(color.FgHiBlack, "no")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			sc.ID, sc.Target, sc.ScanType, sc.Frequency, RelativeAge(r.now, sc.NextRun), enabled)
	}
	return tw.Flush()
}

func (r *tableReporter) WriteRemediation(resultID string, out schemas.SuggestRemediationOutput) error {
	_, err := fmt.Fprintf(r.buf, "Remediation suggestions for %s:\n\n%s\n", resultID, out.RemediationSuggestions)
	return err
}

func (r *tableReporter) Close() error {
	if err := r.buf.Flush(); err != nil {
		_ = r.writer.Close()
		return err
	}
	return r.writer.Close()
}

// RelativeAge renders t relative to now, e.g. "15m ago", "2d ago" or "in 5d".
// Differences beyond 30 days fall back to a date.
func RelativeAge(now, t time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	var span string
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		span = fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		span = fmt.Sprintf("%dh", int(d/time.Hour))
	case d <= 30*24*time.Hour:
		span = fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	default:
		return t.Format("2006-01-02")
	}

	if future {
		return "in " + span
	}
	return span + " ago"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
