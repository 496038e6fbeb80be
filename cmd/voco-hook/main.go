// voco-hook is the notify hook for codex sessions. It reads the event from
// stdin (or argv) and runs the configured continuation.
package main

import (
	"os"

	"github.com/vexyart/vomgr/internal/engine"
	"github.com/vexyart/vomgr/internal/hook"
)

func main() {
	os.Exit(engine.HookMain("codex", hook.ParseCodex))
}
