package errors

import (
	"fmt"
	"strings"
)

// UnknownDomainError reports a health-domain name outside the known set.
type UnknownDomainError struct {
	Domain string
}

// NewUnknownDomainError constructs an UnknownDomainError.
func NewUnknownDomainError(domain string) error {
	return &UnknownDomainError{Domain: domain}
}

func (e *UnknownDomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown health domain %q (expected disks, luks, zfs, system, network or all)", e.Domain)
}

// ConfigError captures a missing or invalid target-configuration value.
type ConfigError struct {
	Key     string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(key, message string, err error) error {
	return &ConfigError{Key: key, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("config error: %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProbeError represents a failure to run an external inspection command at
// all, as opposed to the command reporting an unhealthy subsystem.
type ProbeError struct {
	Probe string
	Err   error
}

// NewProbeError constructs a ProbeError for the named probe.
func NewProbeError(probe string, err error) error {
	return &ProbeError{Probe: probe, Err: err}
}

func (e *ProbeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Probe != "" {
		return fmt.Sprintf("probe %s failed: %v", e.Probe, e.Err)
	}
	return fmt.Sprintf("probe failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ProbeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AbortError is the escalation-policy verdict: one or more domains failed
// and the caller asked for failure to be terminal. It never wraps another
// error; the per-domain diagnostics live in the report returned alongside.
type AbortError struct {
	Failed []string
}

// NewAbortError constructs an AbortError naming the failed domains.
func NewAbortError(failed []string) error {
	return &AbortError{Failed: failed}
}

func (e *AbortError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Failed) == 0 {
		return "health verification failed"
	}
	return fmt.Sprintf("health verification failed: %s", strings.Join(e.Failed, ", "))
}
