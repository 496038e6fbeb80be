// Package doctor checks the local environment for everything a continuation
// run needs and prints an actionable report.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
	"github.com/vexyart/vomgr/internal/terminal"
)

type CheckResult struct {
	Name    string
	Status  string // "ok", "warn", "error"
	Message string
	Details []string
}

// installHints maps assistant CLIs to their install commands.
var installHints = map[string]string{
	"claude": "npm install -g @anthropic-ai/claude-code",
	"codex":  "brew install codex",
	"gemini": "npm install -g @google/gemini-cli",
}

func Run(dir string, s *settings.Settings) error {
	fmt.Println("┌─ vomgr doctor ────────────────────────────────────────────────────────┐")
	fmt.Println("│                                                                       │")

	var results []CheckResult

	// 1. Check assistant binaries
	for _, tool := range settings.Tools {
		results = append(results, checkTool(tool, s))
	}

	// 2. Check the data directory
	results = append(results, checkDataDir(dir))

	// 3. Check the settings file
	results = append(results, checkSettings(dir))

	// 4. Check tracked sessions for stale pids
	results = append(results, checkSessions(dir))

	// 5. Check the configured terminal emulator
	results = append(results, checkTerminal(s))

	// 6. Check desktop notification support
	results = append(results, checkNotify(s))

	var hasErrors, hasWarnings bool
	for _, r := range results {
		icon := "✓"
		if r.Status == "warn" {
			icon = "!"
			hasWarnings = true
		} else if r.Status == "error" {
			icon = "✗"
			hasErrors = true
		}

		fmt.Printf("│  [%s] %-65s │\n", icon, truncate(r.Name+": "+r.Message, 65))
		for _, detail := range r.Details {
			fmt.Printf("│      %-63s │\n", truncate(detail, 63))
		}
	}

	fmt.Println("│                                                                       │")
	fmt.Println("└───────────────────────────────────────────────────────────────────────┘")

	if hasErrors {
		fmt.Println("\nSome checks failed. Please fix the errors above.")
		return fmt.Errorf("doctor found errors")
	} else if hasWarnings {
		fmt.Println("\nSome warnings found. Review the items above.")
	} else {
		fmt.Println("\nAll checks passed!")
	}

	return nil
}

func checkTool(tool string, s *settings.Settings) CheckResult {
	path, err := exec.LookPath(tool)
	if err != nil {
		// A missing binary only matters when a continuation can route to it.
		status := "warn"
		if s.Enabled(tool) || routedTo(tool, s) {
			status = "error"
		}
		return CheckResult{
			Name:    tool,
			Status:  status,
			Message: "not installed",
			Details: []string{"Install with: " + installHints[tool]},
		}
	}
	return CheckResult{
		Name:    tool,
		Status:  "ok",
		Message: path,
	}
}

// routedTo reports whether any enabled tool continues into target.
func routedTo(target string, s *settings.Settings) bool {
	for _, tool := range settings.Tools {
		if s.Enabled(tool) && s.TargetFor(tool) == target {
			return true
		}
	}
	return false
}

func checkDataDir(dir string) CheckResult {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CheckResult{
			Name:    "data directory",
			Status:  "error",
			Message: fmt.Sprintf("cannot create %s", dir),
			Details: []string{fmt.Sprintf("Error: %v", err)},
		}
	}

	testFile := filepath.Join(dir, ".vomgr-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return CheckResult{
			Name:    "data directory",
			Status:  "error",
			Message: fmt.Sprintf("%s is not writable", dir),
			Details: []string{fmt.Sprintf("Error: %v", err)},
		}
	}
	os.Remove(testFile)

	return CheckResult{
		Name:    "data directory",
		Status:  "ok",
		Message: fmt.Sprintf("%s exists and is writable", dir),
	}
}

func checkSettings(dir string) CheckResult {
	path := settings.Path(dir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "settings",
			Status:  "ok",
			Message: "using defaults (no settings.toml)",
		}
	}

	if err := settings.Check(path); err != nil {
		return CheckResult{
			Name:    "settings",
			Status:  "warn",
			Message: "malformed, defaults in effect",
			Details: []string{fmt.Sprintf("Error: %v", err)},
		}
	}

	return CheckResult{
		Name:    "settings",
		Status:  "ok",
		Message: fmt.Sprintf("loaded from %s", path),
	}
}

func checkSessions(dir string) CheckResult {
	sessions := state.NewStore(dir).Read()
	if len(sessions) == 0 {
		return CheckResult{
			Name:    "sessions",
			Status:  "ok",
			Message: "no tracked sessions",
		}
	}

	var stale []string
	for tool, info := range sessions {
		if !state.Alive(info.PID) {
			stale = append(stale, fmt.Sprintf("%s (pid %d)", tool, info.PID))
		}
	}

	if len(stale) > 0 {
		return CheckResult{
			Name:    "sessions",
			Status:  "warn",
			Message: fmt.Sprintf("%d stale session state entries", len(stale)),
			Details: []string{"Stale: " + strings.Join(stale, ", "),
				"These pids have exited; the next relaunch replaces them"},
		}
	}

	return CheckResult{
		Name:    "sessions",
		Status:  "ok",
		Message: fmt.Sprintf("%d tracked session(s), all alive", len(sessions)),
	}
}

func checkTerminal(s *settings.Settings) CheckResult {
	if s.TerminalCommand == "" {
		return CheckResult{
			Name:    "terminal",
			Status:  "ok",
			Message: "not configured (launches run headless)",
		}
	}

	if !terminal.Available(s.TerminalCommand) {
		return CheckResult{
			Name:    "terminal",
			Status:  "warn",
			Message: "configured emulator not found",
			Details: []string{fmt.Sprintf("Command: %s", s.TerminalCommand),
				"Relaunches will fall back to headless launches"},
		}
	}

	return CheckResult{
		Name:    "terminal",
		Status:  "ok",
		Message: strings.Fields(s.TerminalCommand)[0],
	}
}

func checkNotify(s *settings.Settings) CheckResult {
	if !s.Notify.Enabled {
		return CheckResult{
			Name:    "notifications",
			Status:  "ok",
			Message: "disabled",
		}
	}

	var probe string
	switch {
	case commandExists("osascript"):
		probe = "osascript"
	case commandExists("notify-send"):
		probe = "notify-send"
	}

	if probe == "" {
		return CheckResult{
			Name:    "notifications",
			Status:  "warn",
			Message: "enabled but no notifier found",
			Details: []string{"Relaunches proceed without the desktop banner"},
		}
	}

	return CheckResult{
		Name:    "notifications",
		Status:  "ok",
		Message: probe,
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
