// Package runlock enforces single-instance execution against a shared work
// directory using an advisory file lock.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"loom/internal/services"
)

// ErrHeld reports that another process already holds the lock.
var ErrHeld = errors.New("another loom instance is already running")

const lockName = ".loom.lock"

// Lock guards a work directory for the lifetime of a run.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the work directory lock without blocking. It fails with
// ErrHeld when another instance owns it.
func Acquire(workDir string) (*Lock, error) {
	path := filepath.Join(workDir, lockName)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrResourceCreation, "runlock", "acquire",
			fmt.Sprintf("lock %s", path), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrResourceCreation, "runlock", "acquire", path, ErrHeld)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
