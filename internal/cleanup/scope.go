package cleanup

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"loom/internal/logging"
)

// Scope owns a set of transient paths for the duration of one job.
// It is not safe for concurrent use; a job mutates its own scope only.
type Scope struct {
	logger *slog.Logger
	paths  []string
}

// NewScope constructs an empty scope. A nil logger disables removal logging.
func NewScope(logger *slog.Logger) *Scope {
	return &Scope{logger: logging.NewComponentLogger(logger, "cleanup")}
}

// Add registers a path for removal when the scope closes.
func (s *Scope) Add(path string) {
	if path == "" {
		return
	}
	s.paths = append(s.paths, path)
}

// Close removes every tracked path. Paths that no longer exist are skipped;
// other removal failures are logged and swallowed so they never mask the
// error that ended the job.
func (s *Scope) Close() {
	for _, path := range s.paths {
		err := os.Remove(path)
		switch {
		case err == nil:
			s.logger.Debug("removed transient path", logging.String("path", path))
		case errors.Is(err, fs.ErrNotExist):
		default:
			s.logger.Warn("failed to remove transient path",
				logging.String("path", path),
				logging.Error(err))
		}
	}
	s.paths = nil
}

// Run executes body with a fresh scope and closes the scope before
// returning, propagating body's error unchanged.
func Run(logger *slog.Logger, body func(*Scope) error) error {
	scope := NewScope(logger)
	defer scope.Close()
	return body(scope)
}
