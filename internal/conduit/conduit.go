package conduit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"loom/internal/services"
)

// Create makes a named FIFO at path. It fails when a filesystem object
// already exists there or when the host does not support FIFOs.
func Create(path string) error {
	if path == "" {
		return services.Wrap(services.ErrResourceCreation, "conduit", "create", "path required", nil)
	}
	if _, err := os.Lstat(path); err == nil {
		return services.Wrap(services.ErrResourceCreation, "conduit", "create",
			fmt.Sprintf("path %q already exists", path), nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrResourceCreation, "conduit", "create", "stat path", err)
	}

	if err := unix.Mkfifo(path, 0o600); err != nil {
		switch {
		case errors.Is(err, unix.EEXIST):
			return services.Wrap(services.ErrResourceCreation, "conduit", "create",
				fmt.Sprintf("path %q already exists", path), err)
		case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EPERM), errors.Is(err, unix.EOPNOTSUPP):
			return services.Wrap(services.ErrResourceCreation, "conduit", "create",
				"host filesystem does not support FIFOs", err)
		default:
			return services.Wrap(services.ErrResourceCreation, "conduit", "create", "mkfifo", err)
		}
	}
	return nil
}

// IsFIFO reports whether path exists and is a named pipe.
func IsFIFO(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeNamedPipe != 0
}
