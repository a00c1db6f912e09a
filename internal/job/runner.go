package job

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"loom/internal/cleanup"
	"loom/internal/conduit"
	"loom/internal/config"
	"loom/internal/ledger"
	"loom/internal/logging"
	"loom/internal/mux"
	"loom/internal/pipeline"
	"loom/internal/services"
	"loom/internal/title"
)

// Muxer is the final combine step contract.
type Muxer interface {
	Run(ctx context.Context, source, intermediate, destination, jobTitle string) error
}

type pipelineFunc func(ctx context.Context, decode, encode pipeline.Command) (pipeline.Outcome, error)

// Result is the terminal record of one job attempt.
type Result struct {
	Job         Job
	Destination string
	Outcome     pipeline.Outcome
	// StagesRan distinguishes a zero-value Outcome from a genuine
	// pair of clean exits.
	StagesRan bool
	State     State
	Err       error
}

// Runner sequences one job at a time through the conversion pipeline.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *ledger.Store
	muxer  Muxer
	run    pipelineFunc
}

// RunnerOption customizes runner construction.
type RunnerOption func(*Runner)

// WithMuxer injects a custom multiplex step (primarily for tests).
func WithMuxer(m Muxer) RunnerOption {
	return func(r *Runner) {
		if m != nil {
			r.muxer = m
		}
	}
}

// WithPipeline injects a custom pipeline implementation (primarily for tests).
func WithPipeline(run pipelineFunc) RunnerOption {
	return func(r *Runner) {
		if run != nil {
			r.run = run
		}
	}
}

// NewRunner constructs a runner. The ledger store may be nil, in which case
// no history is recorded.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *ledger.Store, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "job", "new runner", "config required", nil)
	}

	muxStep, err := mux.NewStep(cfg.Tools.Muxer, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "job", "new runner", "construct mux step", err)
	}

	runner := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "job"),
		store:  store,
		muxer:  muxStep,
		run:    pipeline.NewCoordinator(logger).Run,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Run executes one job end to end and returns its result. Transient
// resources are reclaimed on every path out.
func (r *Runner) Run(ctx context.Context, j Job) Result {
	result := Result{Job: j, State: StateCreated}

	entry, err := r.store.Begin(ctx, j.Source, j.Title)
	if err != nil {
		r.logger.Warn("failed to record job start", logging.Error(err))
	}
	if entry != nil {
		ctx = services.WithJobID(ctx, entry.ID)
	}
	logger := logging.WithContext(ctx, r.logger).With(
		logging.String(logging.FieldTitle, j.Title),
		logging.String(logging.FieldSource, j.Source),
	)

	destination, err := title.ResolveDestination(r.cfg.Paths.OutputDir, j.Title, j.Options.Overwrite)
	if err != nil {
		result.Err = err
		result.State = StateFailed
		r.persist(ctx, entry, &result)
		return result
	}
	result.Destination = destination

	logger.Info("job started",
		logging.String(logging.FieldEventType, "job_start"),
		logging.String("destination", destination),
		logging.Int64("video_bitrate", j.Options.VideoBitrate))

	err = cleanup.Run(r.logger, func(scope *cleanup.Scope) error {
		workName := title.SanitizeFileName(j.Title)
		if workName == "" {
			workName = "job"
		}
		workName = fmt.Sprintf("%s-%s", workName, uuid.NewString())

		conduitPath := filepath.Join(r.cfg.Paths.WorkDir, workName+".y4m")
		scope.Add(conduitPath)
		if err := conduit.Create(conduitPath); err != nil {
			return err
		}

		intermediate := filepath.Join(r.cfg.Paths.WorkDir, workName+".h264")
		scope.Add(intermediate)

		result.State = StateResourcesOpened
		r.persist(ctx, entry, &result)

		bitrate := j.Options.VideoBitrate
		if bitrate <= 0 {
			bitrate = DefaultVideoBitrate
		}
		decode := DecodeCommand(r.cfg, j.Source, conduitPath)
		encode := EncodeCommand(r.cfg, conduitPath, intermediate, bitrate)

		result.State = StateStagesRunning
		r.persist(ctx, entry, &result)

		outcome, err := r.run(ctx, decode, encode)
		if err != nil {
			return err
		}
		result.Outcome = outcome
		result.StagesRan = true
		result.State = StateStagesTerminated
		r.persist(ctx, entry, &result)

		if !outcome.Success() {
			return services.Wrap(services.ErrStageFailure, "job", "pipeline",
				failureMessage(outcome), nil)
		}

		result.State = StateMultiplexRunning
		r.persist(ctx, entry, &result)

		return r.muxer.Run(ctx, j.Source, intermediate, destination, j.Title)
	})

	if err != nil {
		result.Err = err
		result.State = StateFailed
		attrs := []logging.Attr{
			logging.String(logging.FieldEventType, "job_failure"),
			logging.Error(err),
		}
		if result.StagesRan {
			attrs = append(attrs,
				logging.String("decode_status", result.Outcome.Decode.String()),
				logging.String("encode_status", result.Outcome.Encode.String()))
		}
		logger.Error("job failed", logging.Args(attrs...)...)
	} else {
		result.State = StateDone
		logger.Info("job complete",
			logging.String(logging.FieldEventType, "job_complete"),
			logging.String("destination", destination))
	}
	r.persist(ctx, entry, &result)
	return result
}

// RunBatch executes jobs strictly in sequence. A failed job is recorded and
// the batch continues.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Job: j, State: StateFailed, Err: err})
			continue
		}
		results = append(results, r.Run(ctx, j))
	}
	return results
}

// Failed counts results that did not finish.
func Failed(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Err != nil {
			count++
		}
	}
	return count
}

func (r *Runner) persist(ctx context.Context, entry *ledger.Entry, result *Result) {
	if entry == nil {
		return
	}
	entry.Destination = result.Destination
	entry.State = string(result.State)
	if result.StagesRan {
		entry.DecodeStatus = result.Outcome.Decode.String()
		entry.EncodeStatus = result.Outcome.Encode.String()
	}
	if result.Err != nil {
		entry.ErrorMessage = result.Err.Error()
	}
	if err := r.store.Update(ctx, entry); err != nil {
		r.logger.Warn("failed to persist job state", logging.Error(err))
	}
}

func failureMessage(outcome pipeline.Outcome) string {
	parts := make([]string, 0, 2)
	for _, stage := range []struct {
		role   string
		status string
		ok     bool
		output string
	}{
		{"decode", outcome.Decode.String(), outcome.Decode.Success(), outcome.DecodeOutput},
		{"encode", outcome.Encode.String(), outcome.Encode.Success(), outcome.EncodeOutput},
	} {
		detail := fmt.Sprintf("%s %s", stage.role, stage.status)
		if !stage.ok && stage.output != "" {
			detail = fmt.Sprintf("%s (%s)", detail, lastLine(stage.output))
		}
		parts = append(parts, detail)
	}
	return strings.Join(parts, "; ")
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
