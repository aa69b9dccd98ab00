package health

import (
	"context"

	"github.com/postflightdev/postflight/internal/logger"
)

// Checker verifies one health domain. Check runs every configured probe
// and resolves failures locally into the outcome; it never returns an
// error, since a probe that cannot run is itself a recorded failure.
type Checker interface {
	Domain() Domain
	Check(ctx context.Context) Outcome
}

// recorder pairs outcome accumulation with notification-sink logging, so
// every sub-check is reported the moment it resolves.
type recorder struct {
	log *logger.Logger
}

func newRecorder(domain Domain, log *logger.Logger) recorder {
	return recorder{log: log.WithDomain(string(domain))}
}

func (r recorder) pass(o *Outcome, label, message string) {
	o.Pass(label, message)
	r.log.WithFields(map[string]any{"check": label}).Success(message)
}

func (r recorder) fail(o *Outcome, label, message string) {
	o.Fail(label, message)
	r.log.WithFields(map[string]any{"check": label}).Error(nil, message)
}

func (r recorder) warn(o *Outcome, label, message string) {
	o.Warn(label, message)
	r.log.WithFields(map[string]any{"check": label}).Warn(message)
}
