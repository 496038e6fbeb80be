// voco launches the codex CLI with continuation-friendly defaults. It
// understands -m <profile> and the -p/-e exec mode flags; everything else is
// joined into the prompt.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vexyart/vomgr/internal/launcher"
)

func main() {
	profile, execMode, prompt := parseArgs(os.Args[1:])

	req := launcher.Request{
		Tool:    "codex",
		Profile: profile,
		Prompt:  prompt,
	}
	if execMode {
		req.Extra = []string{"-p", "-e"}
	}

	if err := launcher.RunForeground(req); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (profile string, execMode bool, prompt string) {
	var promptParts []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-m" && i+1 < len(args):
			profile = args[i+1]
			i++
		case args[i] == "-p" || args[i] == "-e":
			execMode = true
		default:
			promptParts = append(promptParts, args[i])
		}
	}
	return profile, execMode, strings.Join(promptParts, " ")
}
