package stage

import "fmt"

// ExitStatus is the terminal status of a supervised process.
type ExitStatus struct {
	// Code is the process exit code, or -1 when the process was signaled.
	Code int
	// Signal names the terminating signal when the process did not exit
	// normally, empty otherwise.
	Signal string
}

// Success reports whether the process exited normally with code zero.
func (s ExitStatus) Success() bool {
	return s.Code == 0 && s.Signal == ""
}

func (s ExitStatus) String() string {
	if s.Signal != "" {
		return fmt.Sprintf("terminated by %s", s.Signal)
	}
	return fmt.Sprintf("exit %d", s.Code)
}
