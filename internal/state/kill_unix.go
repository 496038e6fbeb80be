//go:build !windows

package state

import (
	"fmt"
	"os"
	"strconv"
	"syscall"
)

// alive reports whether a process with the given pid exists.
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds. Send signal 0 to check.
	return process.Signal(syscall.Signal(0)) == nil
}

// terminate sends SIGTERM to pid. On Linux the process name is checked first
// so a recycled pid belonging to an unrelated process is left alone.
func terminate(pid int) error {
	if name, ok := processComm(pid); ok && !looksLikeAssistant(name) {
		return fmt.Errorf("pid %d is %q, not an assistant process", pid, name)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return process.Signal(syscall.SIGTERM)
}

// processComm reads the process command name from /proc. Returns ok=false on
// platforms without procfs (macOS), where the caller signals unconditionally.
func processComm(pid int) (string, bool) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/comm")
	if err != nil {
		return "", false
	}
	name := string(data)
	if n := len(name); n > 0 && name[n-1] == '\n' {
		name = name[:n-1]
	}
	return name, true
}

func looksLikeAssistant(comm string) bool {
	for _, tool := range []string{"claude", "codex", "gemini", "node"} {
		if comm == tool {
			return true
		}
	}
	return false
}
