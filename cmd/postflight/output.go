package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/postflightdev/postflight/internal/health"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func printReport(w io.Writer, report *health.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Health Report"))
	fmt.Fprintln(w, strings.Repeat("=", 72))

	for _, outcome := range report.Outcomes {
		verdict := passStyle.Render("PASS")
		if !outcome.Passed {
			verdict = failStyle.Render("FAIL")
		}
		fmt.Fprintf(w, "%s  %s (%.2fs)\n", verdict, outcome.Domain.Title(), outcome.Duration.Seconds())

		for _, sc := range outcome.SubChecks {
			fmt.Fprintf(w, "  %s %-24s %s\n", subCheckSymbol(sc), sc.Label, truncateString(sc.Message, 72))
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "Checks: %d total, %d failed, %d warnings (%.2fs)\n",
		report.TotalChecks(), report.FailedChecks(), report.WarningChecks(), report.Duration.Seconds())

	if report.Passed() {
		fmt.Fprintln(w, passStyle.Render("All health checks passed"))
	} else {
		fmt.Fprintln(w, failStyle.Render("Health verification failed: "+strings.Join(report.FailedDomains(), ", ")))
	}
}

func subCheckSymbol(sc health.SubCheck) string {
	switch {
	case sc.Passed:
		return passStyle.Render("✔")
	case sc.Severity == health.SeverityWarning:
		return warnStyle.Render("⚠")
	default:
		return failStyle.Render("✖")
	}
}

func printJSONReport(w io.Writer, report *health.Report, configPath string) {
	// Convert to JSON-friendly format
	type JSONCheck struct {
		Label    string `json:"label"`
		Passed   bool   `json:"passed"`
		Severity string `json:"severity"`
		Message  string `json:"message"`
	}

	type JSONDomain struct {
		Domain   string      `json:"domain"`
		Passed   bool        `json:"passed"`
		Duration float64     `json:"duration_seconds"`
		Checks   []JSONCheck `json:"checks"`
	}

	type JSONSummary struct {
		Passed        bool    `json:"passed"`
		TotalChecks   int     `json:"total_checks"`
		FailedChecks  int     `json:"failed_checks"`
		WarningChecks int     `json:"warning_checks"`
		Duration      float64 `json:"duration_seconds"`
	}

	type JSONOutput struct {
		ConfigFile string       `json:"config_file"`
		Timestamp  string       `json:"timestamp"`
		Summary    JSONSummary  `json:"summary"`
		Domains    []JSONDomain `json:"domains"`
	}

	jsonOutput := JSONOutput{
		ConfigFile: configPath,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Summary: JSONSummary{
			Passed:        report.Passed(),
			TotalChecks:   report.TotalChecks(),
			FailedChecks:  report.FailedChecks(),
			WarningChecks: report.WarningChecks(),
			Duration:      report.Duration.Seconds(),
		},
		Domains: make([]JSONDomain, len(report.Outcomes)),
	}

	for i, outcome := range report.Outcomes {
		jsonDomain := JSONDomain{
			Domain:   string(outcome.Domain),
			Passed:   outcome.Passed,
			Duration: outcome.Duration.Seconds(),
			Checks:   make([]JSONCheck, len(outcome.SubChecks)),
		}
		for j, sc := range outcome.SubChecks {
			jsonDomain.Checks[j] = JSONCheck{
				Label:    sc.Label,
				Passed:   sc.Passed,
				Severity: string(sc.Severity),
				Message:  sc.Message,
			}
		}
		jsonOutput.Domains[i] = jsonDomain
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(jsonOutput)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
