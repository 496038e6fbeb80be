// vocl-hook is the stop hook for claude sessions. It reads the stop event
// from stdin (or argv) and runs the configured continuation.
package main

import (
	"os"

	"github.com/vexyart/vomgr/internal/engine"
	"github.com/vexyart/vomgr/internal/hook"
)

func main() {
	os.Exit(engine.HookMain("claude", hook.ParseClaude))
}
