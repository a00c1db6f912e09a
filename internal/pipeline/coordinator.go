package pipeline

import (
	"context"
	"log/slog"

	"loom/internal/logging"
	"loom/internal/stage"
)

// Command is one stage's argument vector, including the executable.
type Command struct {
	Role string
	Argv []string
}

// Outcome is the joint terminal status of both stages. It is the sole input
// to the decision of whether the multiplex step runs.
type Outcome struct {
	Decode stage.ExitStatus
	Encode stage.ExitStatus

	// DecodeOutput and EncodeOutput hold the tail of each stage's combined
	// output, for failure attribution.
	DecodeOutput string
	EncodeOutput string
}

// Success reports whether both stages exited cleanly.
func (o Outcome) Success() bool {
	return o.Decode.Success() && o.Encode.Success()
}

// launchFunc matches stage.Launch and exists so tests can intercept launches.
type launchFunc func(ctx context.Context, role string, argv []string) (*stage.Handle, error)

// Coordinator supervises one decode/encode pair.
type Coordinator struct {
	logger *slog.Logger
	launch launchFunc
}

// NewCoordinator constructs a coordinator. A nil logger disables logging.
func NewCoordinator(logger *slog.Logger) *Coordinator {
	return &Coordinator{
		logger: logging.NewComponentLogger(logger, "pipeline"),
		launch: stage.Launch,
	}
}

type reaped struct {
	role   string
	status stage.ExitStatus
	err    error
}

// Run launches both stages and blocks until both have a terminal status.
// Stage failures are captured in the Outcome, not returned as errors; the
// error return covers launch and supervision problems only. When a stage
// fails to launch, anything already launched is terminated and reaped before
// Run returns.
func (c *Coordinator) Run(ctx context.Context, decode, encode Command) (Outcome, error) {
	logger := logging.WithContext(ctx, c.logger)

	decodeHandle, err := c.launch(ctx, decode.Role, decode.Argv)
	if err != nil {
		return Outcome{}, err
	}
	logger.Debug("stage launched",
		logging.String(logging.FieldStage, decode.Role),
		logging.Int("pid", decodeHandle.PID()))

	encodeHandle, err := c.launch(ctx, encode.Role, encode.Argv)
	if err != nil {
		decodeHandle.Terminate()
		if _, waitErr := decodeHandle.Wait(); waitErr != nil {
			logger.Warn("reaping decode stage after encode launch failure",
				logging.Error(waitErr))
		}
		return Outcome{}, err
	}
	logger.Debug("stage launched",
		logging.String(logging.FieldStage, encode.Role),
		logging.Int("pid", encodeHandle.PID()))

	handles := map[string]*stage.Handle{
		decode.Role: decodeHandle,
		encode.Role: encodeHandle,
	}

	results := make(chan reaped, len(handles))
	for role, handle := range handles {
		go func(role string, handle *stage.Handle) {
			status, err := handle.Wait()
			results <- reaped{role: role, status: status, err: err}
		}(role, handle)
	}

	var outcome Outcome
	var supervisionErr error
	remaining := len(handles)
	for remaining > 0 {
		r := <-results
		remaining--
		delete(handles, r.role)

		if r.err != nil && supervisionErr == nil {
			supervisionErr = r.err
		}

		switch r.role {
		case decode.Role:
			outcome.Decode = r.status
			outcome.DecodeOutput = decodeHandle.Output()
		case encode.Role:
			outcome.Encode = r.status
			outcome.EncodeOutput = encodeHandle.Output()
		}

		if r.status.Success() {
			logger.Debug("stage finished",
				logging.String(logging.FieldStage, r.role),
				logging.String("status", r.status.String()))
			continue
		}

		logger.Warn("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String(logging.FieldStage, r.role),
			logging.String("status", r.status.String()))

		// First failure: ask the still-running sibling to stop so it does
		// not block on the conduit indefinitely. Its status is reaped by
		// the loop like any other exit.
		for sibling, handle := range handles {
			logger.Debug("terminating sibling stage",
				logging.String(logging.FieldStage, sibling))
			handle.Terminate()
		}
	}

	return outcome, supervisionErr
}
