package job

import (
	"fmt"
	"strconv"
	"strings"

	"loom/internal/services"
	"loom/internal/title"
)

// DefaultVideoBitrate is the encode bitrate used when none is configured,
// equivalent to 768 kbit/s.
const DefaultVideoBitrate = 768 * 1024

// Options are the per-job encode options.
type Options struct {
	// VideoBitrate is the encode target in bits per second.
	VideoBitrate int64
	// Overwrite selects the literal title-based destination name even when a
	// file already exists there.
	Overwrite bool
}

// Job is one conversion unit. It is immutable once created.
type Job struct {
	Source  string
	Title   string
	Options Options
}

// State tracks a job's progress through its lifecycle.
type State string

const (
	StateCreated          State = "created"
	StateResourcesOpened  State = "resources_opened"
	StateStagesRunning    State = "stages_running"
	StateStagesTerminated State = "stages_terminated"
	StateMultiplexRunning State = "multiplex_running"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// ParseBitrate converts a bitrate string to bits per second. A bare number
// passes through unchanged; k, m, and g suffixes scale by binary magnitudes.
func ParseBitrate(value string) (int64, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return DefaultVideoBitrate, nil
	}

	multiplier := int64(1)
	switch trimmed[len(trimmed)-1] {
	case 'k':
		multiplier = 1024
		trimmed = trimmed[:len(trimmed)-1]
	case 'm':
		multiplier = 1024 * 1024
		trimmed = trimmed[:len(trimmed)-1]
	case 'g':
		multiplier = 1024 * 1024 * 1024
		trimmed = trimmed[:len(trimmed)-1]
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bitrate %q: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("bitrate %q: must be positive", value)
	}
	return n * multiplier, nil
}

// BatchSpec describes how a set of input files becomes a batch of jobs.
type BatchSpec struct {
	BaseTitle     string
	Standalone    bool
	NumberPattern string
	Sources       []string
	Options       Options
}

// BuildJobs expands a batch spec into per-file jobs. Standalone batches take
// the base title verbatim and accept exactly one input; otherwise each job's
// title is the base plus a number extracted from its filename, falling back
// to input order for files without usable markers.
func BuildJobs(spec BatchSpec) ([]Job, error) {
	base := strings.TrimSpace(spec.BaseTitle)
	if base == "" {
		return nil, services.Wrap(services.ErrValidation, "job", "build batch", "title required", nil)
	}
	if len(spec.Sources) == 0 {
		return nil, services.Wrap(services.ErrValidation, "job", "build batch", "no input files", nil)
	}

	if spec.Standalone {
		if len(spec.Sources) != 1 {
			return nil, services.Wrap(services.ErrValidation, "job", "build batch",
				fmt.Sprintf("standalone mode accepts exactly one input, got %d", len(spec.Sources)), nil)
		}
		return []Job{{Source: spec.Sources[0], Title: base, Options: spec.Options}}, nil
	}

	pattern, err := title.NewPatternNumberer(spec.NumberPattern)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "job", "build batch", "invalid number pattern", err)
	}
	fallback := title.NewSequenceNumberer()

	jobs := make([]Job, 0, len(spec.Sources))
	for _, source := range spec.Sources {
		n, ok := pattern.Extract(source)
		if !ok {
			n, _ = fallback.Extract(source)
		}
		jobs = append(jobs, Job{
			Source:  source,
			Title:   title.Compose(base, n),
			Options: spec.Options,
		})
	}
	return jobs, nil
}
