package runlock_test

import (
	"errors"
	"testing"

	"loom/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if lock.Path() == "" {
		t.Fatal("expected lock path")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	// Once released the lock can be taken again.
	again, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("release after reacquire: %v", err)
	}
}

func TestAcquireContended(t *testing.T) {
	dir := t.TempDir()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	if _, err := runlock.Acquire(dir); !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("expected ErrHeld for second acquire, got %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *runlock.Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}

func TestAcquireBadDirectory(t *testing.T) {
	_, err := runlock.Acquire("/nonexistent/loom-test")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("missing directory must not look like contention: %v", err)
	}
}
