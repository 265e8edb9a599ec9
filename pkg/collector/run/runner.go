// Package run executes external probe tools with bounded timeouts.
// Every invocation is best-effort: a missing tool, a timeout, and a
// non-zero exit all degrade to an error the collectors translate into
// a probe failure, never into an aborted run.
package run

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external tool invocation.
const DefaultTimeout = 3 * time.Second

var (
	// ErrToolUnavailable covers a tool that is missing from PATH or that
	// exceeded its timeout. The two cases degrade identically.
	ErrToolUnavailable = errors.New("tool unavailable")

	// ErrToolFailed covers a tool that ran but exited non-zero.
	ErrToolFailed = errors.New("tool failed")
)

// Runner executes an external tool and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs tools via os/exec with a per-invocation timeout.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Run executes name with args and returns trimmed stdout.
// The returned error wraps ErrToolUnavailable or ErrToolFailed.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", fmt.Errorf("%w: %s timed out after %s", ErrToolUnavailable, name, timeout)
		case errors.Is(err, exec.ErrNotFound):
			return "", fmt.Errorf("%w: %s not found in PATH", ErrToolUnavailable, name)
		default:
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				msg := strings.TrimSpace(string(exitErr.Stderr))
				if msg == "" {
					msg = exitErr.String()
				}
				return "", fmt.Errorf("%w: %s: %s", ErrToolFailed, name, msg)
			}
			return "", fmt.Errorf("%w: %s: %v", ErrToolUnavailable, name, err)
		}
	}

	return strings.TrimSpace(string(out)), nil
}

// Reason renders a runner error as a probe failure reason string.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
