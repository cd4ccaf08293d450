// Package mockdata provides the built-in demonstration data set. Timestamps are
// computed relative to an injected clock so the dashboard window always has
// something in it.
package mockdata

import (
	"time"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// ScanResults returns the five demonstration scans relative to now. Each call
// returns fresh slices the caller may keep.
func ScanResults(now time.Time) []schemas.ScanResult {
	return []schemas.ScanResult{
		{
			ID:        "scan-01",
			Target:    "192.168.1.1",
			ScanType:  schemas.ScanTypeFull,
			Agent:     "Agent-007",
			Status:    schemas.ScanStatusCompleted,
			RiskScore: 85,
			Summary:   "Critical vulnerability (CVE-2023-1234) found on port 445.",
			CreatedAt: now.AddDate(0, 0, -1),
			Findings: schemas.Findings{
				Raw: "Nmap scan report for 192.168.1.1\nHost is up (0.0021s latency).\nNot shown: 996 closed tcp ports (reset)\n" +
					"PORT STATE SERVICE\n22/tcp open ssh\n80/tcp open http\n443/tcp open https\n445/tcp open microsoft-ds\n... (and more)",
				OpenPorts: []schemas.OpenPort{
					{Port: 22, Service: "SSH"},
					{Port: 80, Service: "HTTP"},
					{Port: 443, Service: "HTTPS"},
					{Port: 445, Service: "SMB"},
				},
				OSGuess: "Linux 5.4",
				Vulnerabilities: []schemas.Vulnerability{
					{CVE: "CVE-2023-1234", Severity: schemas.VulnSeverityCritical, Description: "Remote code execution vulnerability in SMBv1."},
					{CVE: "CVE-2023-5678", Severity: schemas.VulnSeverityMedium, Description: "Outdated OpenSSH version with known weaknesses."},
				},
			},
		},
		{
			ID:        "scan-02",
			Target:    "example.com",
			ScanType:  schemas.ScanTypeQuick,
			Agent:     "Agent-003",
			Status:    schemas.ScanStatusCompleted,
			RiskScore: 45,
			Summary:   "Outdated web server detected.",
			CreatedAt: now.AddDate(0, 0, -2).Add(-4 * time.Hour),
			Findings: schemas.Findings{
				Raw: "Nmap scan report for example.com (93.184.216.34)\nHost is up (0.015s latency).\n" +
					"Not shown: 998 closed tcp ports (conn-refused)\nPORT STATE SERVICE\n80/tcp open http\n443/tcp open https\n...",
				OpenPorts: []schemas.OpenPort{
					{Port: 80, Service: "HTTP"},
					{Port: 443, Service: "HTTPS"},
				},
				OSGuess: "Linux 4.15",
				Vulnerabilities: []schemas.Vulnerability{
					{CVE: "CVE-2022-8910", Severity: schemas.VulnSeverityMedium, Description: "Apache httpd 2.4.52 is outdated."},
				},
			},
		},
		{
			ID:        "scan-03",
			Target:    "10.0.0.5",
			ScanType:  schemas.ScanTypeStealth,
			Agent:     "Agent-007",
			Status:    schemas.ScanStatusRunning,
			Summary:   "Scan in progress...",
			CreatedAt: now,
			Findings:  emptyFindings(),
		},
		{
			ID:        "scan-04",
			Target:    "test-server.local",
			ScanType:  schemas.ScanTypeCustom,
			Agent:     "Agent-005",
			Status:    schemas.ScanStatusPending,
			Summary:   "Scan is queued.",
			CreatedAt: now.Add(-15 * time.Minute),
			Findings:  emptyFindings(),
		},
		{
			ID:        "scan-05",
			Target:    "172.16.0.10",
			ScanType:  schemas.ScanTypeFull,
			Agent:     "Agent-003",
			Status:    schemas.ScanStatusError,
			Summary:   "Host unreachable.",
			CreatedAt: now.AddDate(0, 0, -3),
			Findings: schemas.Findings{
				Raw: "Starting Nmap 7.94 ( https://nmap.org ) at 2023-10-23 14:30 UTC\n" +
					"Note: Host seems down. If it is really up, but blocking our ping probes, try -Pn\n" +
					"Nmap done: 1 IP address (0 hosts up) scanned in 3.05 seconds",
				OpenPorts:       []schemas.OpenPort{},
				OSGuess:         "N/A",
				Vulnerabilities: []schemas.Vulnerability{},
			},
		},
	}
}

// ScheduledScans returns the three demonstration schedules relative to now.
func ScheduledScans(now time.Time) []schemas.ScheduledScan {
	return []schemas.ScheduledScan{
		{
			ID:        "sched-01",
			Target:    "10.0.0.0/24",
			ScanType:  schemas.ScanTypeQuick,
			Frequency: schemas.FrequencyWeekly,
			NextRun:   now.AddDate(0, 0, 7-2),
			Enabled:   true,
		},
		{
			ID:        "sched-02",
			Target:    "corp-assets.com",
			ScanType:  schemas.ScanTypeFull,
			Frequency: schemas.FrequencyMonthly,
			NextRun:   now.AddDate(0, 1, -10),
			Enabled:   true,
		},
		{
			ID:        "sched-03",
			Target:    "dmz.internal.net",
			ScanType:  schemas.ScanTypeStealth,
			Frequency: schemas.FrequencyDaily,
			NextRun:   now.AddDate(0, 0, 1),
			Enabled:   false,
		},
	}
}

func emptyFindings() schemas.Findings {
	return schemas.Findings{
		OpenPorts:       []schemas.OpenPort{},
		Vulnerabilities: []schemas.Vulnerability{},
	}
}
