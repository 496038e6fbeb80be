// Package launcher builds and starts assistant CLI processes. Each tool has
// its own invocation conventions; the launcher normalizes them into one call
// shape used by the shims and by the continuation engine. Launched processes
// are detached so a hook can exit while the assistant keeps running.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrToolNotFound marks a launch failure caused by a missing assistant
// binary, so callers can log an actionable install hint instead of a generic
// failure.
var ErrToolNotFound = errors.New("assistant binary not found")

// installHints maps tools to their install commands, shown on ErrToolNotFound.
var installHints = map[string]string{
	"claude": "npm install -g @anthropic-ai/claude-code",
	"codex":  "brew install codex",
	"gemini": "npm install -g @google/gemini-cli",
}

// Request describes one assistant launch.
type Request struct {
	Tool   string
	Dir    string   // working directory for the process
	Prompt string   // optional prompt text passed per tool convention
	Extra  []string // pre-normalized extra arguments, appended after defaults

	// Continue asks the tool to pick up its previous conversation. Only
	// claude distinguishes this; codex and gemini always resume via flags.
	Continue bool

	// Profile selects the codex model profile (-m); empty means gpt5.
	Profile string

	// Model selects the claude model (--model); empty omits the flag.
	Model string
}

// Command returns the argv for req. The binary is resolved via PATH and
// well-known install directories; when unresolvable the bare name is kept so
// the caller can still display the command (Launch reports ErrToolNotFound).
func Command(req Request) ([]string, error) {
	bin, _ := resolveBinary(req.Tool)

	var argv []string
	switch req.Tool {
	case "claude":
		argv = []string{bin}
		if req.Continue {
			argv = append(argv, "--continue")
		}
		argv = append(argv, "--dangerously-skip-permissions")
		if req.Model != "" {
			argv = append(argv, "--model", req.Model)
		}
		argv = append(argv, req.Extra...)
		if req.Prompt != "" {
			argv = append(argv, "--prompt", req.Prompt)
		}
	case "codex":
		profile := req.Profile
		if profile == "" {
			profile = "gpt5"
		}
		argv = []string{bin}
		if req.Dir != "" {
			argv = append(argv, "--cd="+req.Dir)
		}
		argv = append(argv, "-m", profile,
			"--dangerously-bypass-approvals-and-sandbox",
			"--sandbox", "danger-full-access")
		argv = append(argv, req.Extra...)
		if req.Prompt != "" {
			argv = append(argv, req.Prompt)
		}
	case "gemini":
		argv = []string{bin, "-c", "-y"}
		argv = append(argv, req.Extra...)
		if req.Prompt != "" {
			argv = append(argv, req.Prompt)
		}
	default:
		return nil, fmt.Errorf("unknown tool %q", req.Tool)
	}
	return argv, nil
}

// Launch starts the assistant described by req as a detached background
// process and returns its pid. A missing binary yields ErrToolNotFound.
func Launch(req Request) (int, error) {
	if _, ok := resolveBinary(req.Tool); !ok {
		hint := installHints[req.Tool]
		if hint != "" {
			return 0, fmt.Errorf("%s not installed (try: %s): %w", req.Tool, hint, ErrToolNotFound)
		}
		return 0, fmt.Errorf("%s: %w", req.Tool, ErrToolNotFound)
	}

	argv, err := Command(req)
	if err != nil {
		return 0, err
	}
	return StartDetached(argv, req.Dir)
}

// RunForeground starts the assistant described by req with inherited stdio
// and waits for it to exit. This is the shim path: the user drives the
// assistant interactively through the wrapper.
func RunForeground(req Request) error {
	if _, ok := resolveBinary(req.Tool); !ok {
		hint := installHints[req.Tool]
		if hint != "" {
			return fmt.Errorf("%s not installed (try: %s): %w", req.Tool, hint, ErrToolNotFound)
		}
		return fmt.Errorf("%s: %w", req.Tool, ErrToolNotFound)
	}

	argv, err := Command(req)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = req.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// StartDetached starts argv in dir as its own session, without waiting, and
// returns the new pid. Stdio is disconnected so the child outlives the hook.
func StartDetached(argv []string, dir string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	setDetached(cmd)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || os.IsNotExist(err) {
			return 0, fmt.Errorf("starting %s: %w", argv[0], ErrToolNotFound)
		}
		return 0, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	pid := cmd.Process.Pid
	// The hook must not wait on the assistant; release our handle and let the
	// child be reparented when this process exits.
	_ = cmd.Process.Release()
	return pid, nil
}

// resolveBinary locates the tool executable in PATH or in the common install
// directories the package managers use.
func resolveBinary(name string) (string, bool) {
	if path, err := exec.LookPath(name); err == nil {
		return path, true
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join("/usr/local/bin", name),
		filepath.Join(home, ".local", "bin", name),
		filepath.Join("/opt/homebrew/bin", name),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return name, false
}
