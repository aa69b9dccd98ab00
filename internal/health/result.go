package health

import "time"

// Severity classifies how a failing sub-check affects the domain verdict.
type Severity string

const (
	// SeverityError failures flip the owning domain's verdict to failed.
	SeverityError Severity = "error"
	// SeverityWarning failures are informational and never change the
	// verdict. They mark signals that may be transient during
	// provisioning, like an unassigned address or a failed ping.
	SeverityWarning Severity = "warning"
)

// SubCheck records a single probe's result.
type SubCheck struct {
	Label    string
	Passed   bool
	Severity Severity
	Message  string
}

// Outcome is one domain's verdict together with its full diagnostic trail.
// The verdict is the AND of the Error-severity sub-checks alone.
type Outcome struct {
	Domain    Domain
	Passed    bool
	SubChecks []SubCheck
	Duration  time.Duration
}

// newOutcome starts a passing outcome; recorded failures pull it down.
func newOutcome(domain Domain) Outcome {
	return Outcome{Domain: domain, Passed: true}
}

// Pass records a passing sub-check.
func (o *Outcome) Pass(label, message string) {
	o.SubChecks = append(o.SubChecks, SubCheck{
		Label:    label,
		Passed:   true,
		Severity: SeverityError,
		Message:  message,
	})
}

// Fail records an Error-severity failure and flips the verdict.
func (o *Outcome) Fail(label, message string) {
	o.SubChecks = append(o.SubChecks, SubCheck{
		Label:    label,
		Passed:   false,
		Severity: SeverityError,
		Message:  message,
	})
	o.Passed = false
}

// Warn records a Warning-severity failure. The verdict is untouched.
func (o *Outcome) Warn(label, message string) {
	o.SubChecks = append(o.SubChecks, SubCheck{
		Label:    label,
		Passed:   false,
		Severity: SeverityWarning,
		Message:  message,
	})
}

// Failures returns the Error-severity failures.
func (o Outcome) Failures() []SubCheck {
	var failures []SubCheck
	for _, sc := range o.SubChecks {
		if !sc.Passed && sc.Severity == SeverityError {
			failures = append(failures, sc)
		}
	}
	return failures
}

// Warnings returns the Warning-severity failures.
func (o Outcome) Warnings() []SubCheck {
	var warnings []SubCheck
	for _, sc := range o.SubChecks {
		if !sc.Passed && sc.Severity == SeverityWarning {
			warnings = append(warnings, sc)
		}
	}
	return warnings
}

// Report aggregates the outcomes of one verification run.
type Report struct {
	Domain   Domain
	Outcomes []Outcome
	Duration time.Duration
}

// Add appends a domain outcome.
func (r *Report) Add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Passed is the AND across every recorded outcome.
func (r *Report) Passed() bool {
	for _, outcome := range r.Outcomes {
		if !outcome.Passed {
			return false
		}
	}
	return true
}

// FailedDomains names the domains whose verdict failed, in check order.
func (r *Report) FailedDomains() []string {
	var failed []string
	for _, outcome := range r.Outcomes {
		if !outcome.Passed {
			failed = append(failed, string(outcome.Domain))
		}
	}
	return failed
}

// TotalChecks counts every recorded sub-check.
func (r *Report) TotalChecks() int {
	total := 0
	for _, outcome := range r.Outcomes {
		total += len(outcome.SubChecks)
	}
	return total
}

// FailedChecks counts the Error-severity failures across all domains.
func (r *Report) FailedChecks() int {
	failed := 0
	for _, outcome := range r.Outcomes {
		failed += len(outcome.Failures())
	}
	return failed
}

// WarningChecks counts the Warning-severity failures across all domains.
func (r *Report) WarningChecks() int {
	warnings := 0
	for _, outcome := range r.Outcomes {
		warnings += len(outcome.Warnings())
	}
	return warnings
}
