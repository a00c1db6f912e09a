// Package deps verifies the external tools and directories a conversion run
// needs before any work starts.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"loom/internal/config"
)

// Requirement defines an external binary the pipeline invokes.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// ToolRequirements lists the external binaries the configured pipeline uses.
func ToolRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Decoder",
			Command:     cfg.Tools.Decoder,
			Description: "Produces the raw video stream",
		},
		{
			Name:        "Encoder",
			Command:     cfg.Tools.Encoder,
			Description: "Compresses the raw video stream",
		},
		{
			Name:        "Muxer",
			Command:     cfg.Tools.Muxer,
			Description: "Combines video and audio into the final file",
		},
	}
}

// CheckDirectoryAccess verifies the directory exists and is read/write
// accessible for the current user.
func CheckDirectoryAccess(name, path string) Status {
	status := Status{Name: name, Command: path}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
		} else {
			status.Detail = fmt.Sprintf("stat: %v", err)
		}
		return status
	}
	if !info.IsDir() {
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}
	status.Available = true
	status.Detail = "read/write ok"
	return status
}

// CheckAll evaluates every requirement for the given config: the pipeline
// tools plus the work and output directories.
func CheckAll(cfg *config.Config) []Status {
	results := CheckBinaries(ToolRequirements(cfg))
	results = append(results,
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	)
	return results
}

// Failed reports whether any required entry is unavailable.
func Failed(results []Status) bool {
	for _, res := range results {
		if !res.Optional && !res.Available {
			return true
		}
	}
	return false
}
