package stage

import (
	"context"
	"errors"
	"testing"
	"time"

	"loom/internal/services"
)

func TestLaunchAndWaitSuccess(t *testing.T) {
	handle, err := Launch(context.Background(), "decode", []string{"sh", "-c", "exit 0"})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	status, err := handle.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !status.Success() {
		t.Fatalf("expected success, got %s", status)
	}
}

func TestWaitReportsNonzeroExit(t *testing.T) {
	handle, err := Launch(context.Background(), "encode", []string{"sh", "-c", "exit 3"})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	status, err := handle.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if status.Success() {
		t.Fatal("expected failure status")
	}
	if status.Code != 3 {
		t.Fatalf("expected exit code 3, got %d", status.Code)
	}
}

func TestLaunchMissingBinary(t *testing.T) {
	_, err := Launch(context.Background(), "decode", []string{"definitely-not-a-real-binary"})
	if err == nil {
		t.Fatal("expected launch error")
	}
	if !errors.Is(err, services.ErrLaunch) {
		t.Fatalf("expected launch marker, got %v", err)
	}
}

func TestLaunchEmptyArgv(t *testing.T) {
	if _, err := Launch(context.Background(), "decode", nil); !errors.Is(err, services.ErrLaunch) {
		t.Fatalf("expected launch marker, got %v", err)
	}
}

func TestTerminateSignalsRunningProcess(t *testing.T) {
	handle, err := Launch(context.Background(), "encode", []string{"sleep", "60"})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	done := make(chan ExitStatus, 1)
	go func() {
		status, _ := handle.Wait()
		done <- status
	}()

	handle.Terminate()

	select {
	case status := <-done:
		if status.Signal != "terminated" {
			t.Fatalf("expected SIGTERM exit, got %s", status)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("process did not terminate after SIGTERM")
	}
}

func TestTerminateAfterExitIsNoop(t *testing.T) {
	handle, err := Launch(context.Background(), "decode", []string{"sh", "-c", "exit 0"})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if _, err := handle.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// Must not panic or error on an already-reaped process.
	handle.Terminate()
}

func TestOutputCapturesTail(t *testing.T) {
	handle, err := Launch(context.Background(), "decode", []string{"sh", "-c", "echo boom >&2; exit 1"})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if _, err := handle.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := handle.Output(); got != "boom" {
		t.Fatalf("expected captured stderr, got %q", got)
	}
}

func TestExitStatusString(t *testing.T) {
	if got := (ExitStatus{Code: 2}).String(); got != "exit 2" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := (ExitStatus{Code: -1, Signal: "terminated"}).String(); got != "terminated by terminated" {
		t.Fatalf("unexpected: %q", got)
	}
}
