package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vexyart/vomgr/internal/history"
	"github.com/vexyart/vomgr/internal/hook"
	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
)

// HookMain is the shared body of the per-tool hook binaries. It parses the
// stop event, runs the continuation, and returns the process exit code: 0 for
// a completed run or a quiet skip, 1 for a logged failure. It absorbs panics
// so a hook never takes the calling assistant down with a crash.
func HookMain(tool string, parse func(io.Reader, []string) hook.Payload) (code int) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s hook panic: %v\n", tool, rec)
			code = 1
		}
	}()

	dir, err := settings.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: resolving data directory: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: creating data directory: %v\n", err)
		return 1
	}

	log := NewLogger(filepath.Join(dir, "logs"), tool)
	defer log.Close()

	var hist *history.Store
	if h, err := history.Open(filepath.Join(dir, "history.db")); err == nil {
		hist = h
		defer h.Close()
	} else {
		log.Log("history unavailable: %v", err)
	}

	p := parse(os.Stdin, os.Args[1:])
	p.Tool = tool

	r := NewRunner(settings.Load(settings.Path(dir)), state.NewStore(dir), hist, log)
	if err := r.Run(p); err != nil {
		log.Log("continuation failed: %v", err)
		return 1
	}
	return 0
}
