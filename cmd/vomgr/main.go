package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vexyart/vomgr/internal/doctor"
	"github.com/vexyart/vomgr/internal/history"
	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := settings.Dir()
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}

	args := os.Args[1:]

	// No args or "status" → show the continuation table
	if len(args) == 0 || args[0] == "status" {
		return cmdStatus(dir)
	}

	switch args[0] {
	case "on":
		if len(args) < 2 {
			return fmt.Errorf("usage: vomgr on <tool> [target]")
		}
		return cmdOn(dir, args[1], args[2:])
	case "off":
		if len(args) < 2 {
			return fmt.Errorf("usage: vomgr off <tool>")
		}
		return cmdOff(dir, args[1])
	case "history":
		return cmdHistory(dir, args[1:])
	case "watch":
		return runWatchTUI(dir)
	case "doctor":
		return doctor.Run(dir, settings.Load(settings.Path(dir)))
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Println("Usage: vomgr <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status              Show continuation settings and tracked sessions (default)")
	fmt.Println("  on <tool> [target]  Enable continuation for a tool, optionally routing to target")
	fmt.Println("  off <tool>          Disable continuation for a tool")
	fmt.Println("  history [tool]      Show recent continuation events (-n <count> to limit)")
	fmt.Println("  watch               Live dashboard of tools and sessions")
	fmt.Println("  doctor              Check the environment for problems")
}

func cmdStatus(dir string) error {
	s := settings.Load(settings.Path(dir))
	sessions := state.NewStore(dir).Read()

	fmt.Println("┌─ Continuation Status ─────────────────────────────────────────────────┐")
	fmt.Println("│                                                                       │")
	fmt.Printf("│  %-8s %-9s %-8s %-20s %-22s │\n", "Tool", "Enabled", "Target", "Session", "Started")
	fmt.Printf("│  %-8s %-9s %-8s %-20s %-22s │\n", "────", "───────", "──────", "───────", "───────")

	for _, tool := range settings.Tools {
		enabled := "off"
		if s.Enabled(tool) {
			enabled = "on"
		}

		session := "-"
		started := "-"
		if info, ok := sessions[tool]; ok {
			liveness := "exited"
			if state.Alive(info.PID) {
				liveness = "alive"
			}
			session = fmt.Sprintf("pid %d (%s)", info.PID, liveness)
			started = formatAge(info.StartedAt)
		}

		fmt.Printf("│  %-8s %-9s %-8s %-20s %-22s │\n",
			tool, enabled, s.TargetFor(tool), session, started)
	}

	fmt.Println("│                                                                       │")
	if s.KillPrevious {
		fmt.Printf("│  kill_previous: on   terminal: %-38s │\n", truncate(terminalLabel(s), 38))
	} else {
		fmt.Printf("│  kill_previous: off  terminal: %-38s │\n", truncate(terminalLabel(s), 38))
	}
	fmt.Println("└───────────────────────────────────────────────────────────────────────┘")
	fmt.Println("\nCommands: vomgr on <tool> [target] | vomgr off <tool> | vomgr watch")

	return nil
}

func terminalLabel(s *settings.Settings) string {
	if s.TerminalCommand == "" {
		return "none"
	}
	return s.TerminalCommand
}

func cmdOn(dir, tool string, rest []string) error {
	if !settings.KnownTool(tool) {
		return fmt.Errorf("unknown tool %q (expected one of %v)", tool, settings.Tools)
	}

	target := tool
	if len(rest) > 0 {
		target = rest[0]
		if !settings.KnownTool(target) {
			return fmt.Errorf("unknown target %q (expected one of %v)", target, settings.Tools)
		}
	}

	path := settings.Path(dir)
	s := settings.Load(path)
	s.Tools[tool] = settings.ToolPrefs{Enabled: true, Target: target}
	if err := s.Save(path); err != nil {
		return err
	}

	if target == tool {
		fmt.Printf("Continuation enabled: %s relaunches itself\n", tool)
	} else {
		fmt.Printf("Continuation enabled: %s hands off to %s\n", tool, target)
	}
	return nil
}

func cmdOff(dir, tool string) error {
	if !settings.KnownTool(tool) {
		return fmt.Errorf("unknown tool %q (expected one of %v)", tool, settings.Tools)
	}

	path := settings.Path(dir)
	s := settings.Load(path)
	prefs := s.Tools[tool]
	prefs.Enabled = false
	s.Tools[tool] = prefs
	if err := s.Save(path); err != nil {
		return err
	}

	fmt.Printf("Continuation disabled for %s\n", tool)
	return nil
}

func cmdHistory(dir string, args []string) error {
	tool := ""
	limit := 20
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-n" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[i+1])
			}
			limit = n
			i++
		case settings.KnownTool(args[i]):
			tool = args[i]
		default:
			return fmt.Errorf("usage: vomgr history [tool] [-n <count>]")
		}
	}

	store, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	events, err := store.Recent(tool, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No continuation events recorded yet.")
		return nil
	}

	fmt.Printf("%-20s %-8s %-8s %-10s %-8s %s\n", "When", "Tool", "Target", "Status", "PID", "Detail")
	for _, e := range events {
		pid := "-"
		if e.PID != 0 {
			pid = strconv.Itoa(e.PID)
		}
		fmt.Printf("%-20s %-8s %-8s %-10s %-8s %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Tool, e.Target, e.Status, pid, truncate(e.Detail, 40))
	}
	return nil
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
