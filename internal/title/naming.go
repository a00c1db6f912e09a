package title

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"loom/internal/services"
)

// Extension is the container extension for finished outputs.
const Extension = ".m4v"

// ResolveDestination returns the output path for a per-file title. With
// overwrite the literal title-based name is returned even when it exists;
// otherwise existing paths are skipped by appending an increasing numeric
// suffix (Show.m4v, Show-1.m4v, Show-2.m4v, ...).
func ResolveDestination(dir, perFileTitle string, overwrite bool) (string, error) {
	if strings.TrimSpace(perFileTitle) == "" {
		return "", services.Wrap(services.ErrResourceCreation, "naming", "resolve destination", "title required", nil)
	}

	base := filepath.Join(dir, perFileTitle+Extension)
	if overwrite {
		return base, nil
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", services.Wrap(services.ErrResourceCreation, "naming", "resolve destination",
				fmt.Sprintf("probe %q", candidate), err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", perFileTitle, suffix, Extension))
	}
}

// SanitizeFileName strips characters that are unsafe in work-file names.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "-", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return strings.TrimSpace(replacer.Replace(name))
}
