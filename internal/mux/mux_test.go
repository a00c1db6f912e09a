package mux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loom/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	output string
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string) (string, error) {
	f.binary = binary
	f.args = args
	return f.output, f.err
}

func TestRunRemovesIntermediateOnSuccess(t *testing.T) {
	dir := t.TempDir()
	intermediate := filepath.Join(dir, "work.h264")
	if err := os.WriteFile(intermediate, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeExecutor{}
	step, err := NewStep("ffmpeg", nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("new step: %v", err)
	}

	dest := filepath.Join(dir, "Show-1.m4v")
	if err := step.Run(context.Background(), "/src/Video-01.avi", intermediate, dest, "Show-1"); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := os.Stat(intermediate); !os.IsNotExist(err) {
		t.Fatalf("expected intermediate removed, stat err = %v", err)
	}
	if fake.binary != "ffmpeg" {
		t.Fatalf("unexpected binary: %q", fake.binary)
	}
}

func TestRunBuildsExpectedArgv(t *testing.T) {
	fake := &fakeExecutor{}
	step, err := NewStep("ffmpeg", nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("new step: %v", err)
	}

	intermediate := filepath.Join(t.TempDir(), "i.h264")
	if err := os.WriteFile(intermediate, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := step.Run(context.Background(), "src.avi", intermediate, "out.m4v", "My Show"); err != nil {
		t.Fatalf("run: %v", err)
	}

	joined := strings.Join(fake.args, " ")
	for _, want := range []string{"-i " + intermediate, "-i src.avi", "-c copy", "-metadata title=My Show", "out.m4v"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("argv missing %q: %v", want, fake.args)
		}
	}
}

func TestRunFailureKeepsIntermediate(t *testing.T) {
	dir := t.TempDir()
	intermediate := filepath.Join(dir, "work.h264")
	if err := os.WriteFile(intermediate, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeExecutor{output: "muxing failed: bad stream", err: errors.New("exit status 1")}
	step, err := NewStep("ffmpeg", nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("new step: %v", err)
	}

	runErr := step.Run(context.Background(), "src.avi", intermediate, "out.m4v", "Show")
	if runErr == nil {
		t.Fatal("expected multiplex error")
	}
	if !errors.Is(runErr, services.ErrMultiplex) {
		t.Fatalf("expected multiplex marker, got %v", runErr)
	}
	if _, err := os.Stat(intermediate); err != nil {
		t.Fatalf("intermediate must survive a failed multiplex: %v", err)
	}
}

func TestNewStepRequiresBinary(t *testing.T) {
	if _, err := NewStep("  ", nil); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
