package main

import (
	"errors"
	"fmt"
	"os"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

const (
	exitVerificationFailed = 1
	exitConfigError        = 2
	exitInternalError      = 3
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error onto the process exit code. Checkers and
// the runner never terminate the process themselves; a failed verdict
// travels up as an AbortError and is resolved here, in one place.
func exitCode(err error) int {
	var abortErr *postflighterrors.AbortError
	if errors.As(err, &abortErr) {
		return exitVerificationFailed
	}

	var configErr *postflighterrors.ConfigError
	if errors.As(err, &configErr) {
		return exitConfigError
	}

	var domainErr *postflighterrors.UnknownDomainError
	if errors.As(err, &domainErr) {
		return exitConfigError
	}

	return exitInternalError
}
