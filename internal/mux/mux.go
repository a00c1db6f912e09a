package mux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"loom/internal/logging"
	"loom/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the step.
type Option func(*Step)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(s *Step) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// Step wraps the external muxer tool.
type Step struct {
	binary string
	logger *slog.Logger
	exec   Executor
}

// NewStep constructs a multiplex step around the given muxer binary.
func NewStep(binary string, logger *slog.Logger, opts ...Option) (*Step, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("muxer binary required")
	}
	step := &Step{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mux"),
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(step)
	}
	return step, nil
}

// Run combines the source's audio with the intermediate's video into
// destination, tagging title as metadata. The video stream is copied without
// re-encoding. On success the intermediate file is deleted immediately; on
// failure it is left for scope cleanup.
func (s *Step) Run(ctx context.Context, source, intermediate, destination, title string) error {
	logger := logging.WithContext(ctx, s.logger)

	args := buildArgs(source, intermediate, destination, title)
	logger.Debug("multiplexing",
		logging.String("intermediate", intermediate),
		logging.String("destination", destination))

	output, err := s.exec.Run(ctx, s.binary, args)
	if err != nil {
		detail := strings.TrimSpace(output)
		if detail == "" {
			detail = "muxer exited nonzero"
		}
		return services.Wrap(services.ErrMultiplex, "mux", "combine", detail, err)
	}

	if err := os.Remove(intermediate); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to remove intermediate after multiplex",
			logging.String("intermediate", intermediate),
			logging.Error(err))
	}

	logger.Info("multiplex complete",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.String("destination", destination))
	return nil
}

// buildArgs produces the muxer argument vector: video copied from the
// intermediate, audio taken from the original source.
func buildArgs(source, intermediate, destination, title string) []string {
	return []string{
		"-y",
		"-i", intermediate,
		"-i", source,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c", "copy",
		"-metadata", fmt.Sprintf("title=%s", title),
		"-f", "mp4",
		destination,
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	err := cmd.Run()
	return combined.String(), err
}
