package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const (
	// DefaultArtifactPath is the well-known location the wizard and the
	// build step look for the detection artifact.
	DefaultArtifactPath = "/tmp/vmware_hw_capabilities.json"

	// EnvArtifactPath optionally redirects the artifact location.
	EnvArtifactPath = "VMWARE_HW_ARTIFACT"
)

// ErrUnwritable is returned when the artifact cannot be written to the
// primary path or the PID-suffixed fallback. It is the only fatal error
// class in the handoff layer.
var ErrUnwritable = errors.New("artifact path unwritable")

// Sink publishes a detection artifact and reports where it actually landed.
// Callers must read the returned path: under a permission conflict the
// artifact lands on a fallback path, not the configured one.
type Sink interface {
	Publish(ctx context.Context, v any) (path string, err error)
}

// FileSink writes the artifact as indented JSON to a well-known path.
//
// When the primary path is owned by another user (a prior run under
// different privileges), the write fails with a permission error; the sink
// then retries once against a path embedding the current process id. This
// fallback is deliberate behavior, not an error path.
type FileSink struct {
	// Path is the primary artifact location. Empty means DefaultArtifactPath.
	Path string

	// writeFile is swapped in tests to simulate permission conflicts.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// FallbackPath derives the PID-suffixed alternate for a primary path:
// /tmp/x.json becomes /tmp/x_<pid>.json.
func FallbackPath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", base, os.Getpid(), ext)
}

// Publish writes v as JSON. On a permission conflict at the primary path it
// retries at the PID-suffixed fallback and returns that path with no error.
func (s *FileSink) Publish(ctx context.Context, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	primary := strings.TrimSpace(s.Path)
	if primary == "" {
		primary = DefaultArtifactPath
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}
	data = append(data, '\n')

	write := s.writeFile
	if write == nil {
		write = os.WriteFile
	}

	err = write(primary, data, 0o644)
	if err == nil {
		return primary, nil
	}
	if !isPermission(err) {
		return "", fmt.Errorf("%w: %s: %v", ErrUnwritable, primary, err)
	}

	fallback := FallbackPath(primary)
	slog.Warn("primary artifact path not writable, using pid-suffixed fallback",
		"primary", primary, "fallback", fallback)

	if err := write(fallback, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s and %s: %v", ErrUnwritable, primary, fallback, err)
	}

	return fallback, nil
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}

// MemorySink captures published artifacts for tests.
type MemorySink struct {
	Published []any
}

// Publish records v and reports a synthetic path.
func (s *MemorySink) Publish(_ context.Context, v any) (string, error) {
	s.Published = append(s.Published, v)
	return "memory://artifact", nil
}
