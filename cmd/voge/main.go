// voge launches the gemini CLI with continuation-friendly defaults. All
// arguments are joined into the prompt.
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
	req := launcher.Request{
		Tool:   "gemini",
		Prompt: strings.Join(os.Args[1:], " "),
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
