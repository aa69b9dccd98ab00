package health

import (
	"context"
	"strings"
	"time"

	"github.com/postflightdev/postflight/internal/logger"
	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// Runner resolves a requested domain to its checkers, runs them in the
// fixed order, and applies the escalation policy.
type Runner struct {
	checkers       []Checker
	log            *logger.Logger
	abortOnFailure bool
}

// NewRunner builds a Runner over the given checkers.
func NewRunner(checkers []Checker, log *logger.Logger, abortOnFailure bool) *Runner {
	return &Runner{checkers: checkers, log: log, abortOnFailure: abortOnFailure}
}

// Run executes the checkers for the domain and aggregates their verdicts.
// Domains never short-circuit each other: under DomainAll every checker
// runs even when an earlier one failed. With abort-on-failure set, a
// failing aggregate verdict returns the report together with an
// AbortError; the caller owns process termination.
func (r *Runner) Run(ctx context.Context, domain Domain) (*Report, error) {
	selected, err := r.resolve(domain)
	if err != nil {
		return nil, err
	}

	report := &Report{Domain: domain}
	runStart := time.Now()

	for _, checker := range selected {
		r.log.WithDomain(string(checker.Domain())).Info("checking " + checker.Domain().Title())

		checkStart := time.Now()
		outcome := checker.Check(ctx)
		outcome.Duration = time.Since(checkStart)
		report.Add(outcome)
	}

	report.Duration = time.Since(runStart)

	if !report.Passed() {
		failed := report.FailedDomains()
		if r.abortOnFailure {
			r.log.Error(nil, "health verification failed for "+strings.Join(failed, ", "))
			return report, postflighterrors.NewAbortError(failed)
		}
		r.log.Warn("health verification failed for " + strings.Join(failed, ", "))
	}

	return report, nil
}

// resolve maps the domain onto its checkers. DomainAll selects every
// registered checker in CheckOrder; anything unrecognized fails before a
// single probe runs.
func (r *Runner) resolve(domain Domain) ([]Checker, error) {
	if domain == DomainAll {
		var selected []Checker
		for _, d := range CheckOrder {
			if checker := r.checkerFor(d); checker != nil {
				selected = append(selected, checker)
			}
		}
		return selected, nil
	}

	if checker := r.checkerFor(domain); checker != nil {
		return []Checker{checker}, nil
	}
	return nil, postflighterrors.NewUnknownDomainError(string(domain))
}

func (r *Runner) checkerFor(domain Domain) Checker {
	for _, checker := range r.checkers {
		if checker.Domain() == domain {
			return checker
		}
	}
	return nil
}
