// Package engine decides what happens when an assistant session ends. It
// ties the settings, session state, prompt, launcher, terminal, notify, and
// history packages into the single relaunch sequence the hook binaries run.
package engine

import (
	"fmt"
	"time"

	"github.com/vexyart/vomgr/internal/history"
	"github.com/vexyart/vomgr/internal/hook"
	"github.com/vexyart/vomgr/internal/launcher"
	"github.com/vexyart/vomgr/internal/notify"
	"github.com/vexyart/vomgr/internal/prompt"
	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
	"github.com/vexyart/vomgr/internal/terminal"
)

// Runner executes the continuation sequence for one hook invocation.
type Runner struct {
	settings *settings.Settings
	state    *state.Store
	history  *history.Store // optional; nil disables event recording
	log      *Logger

	// Process and desktop effects are indirected so tests can observe the
	// sequence without spawning anything.
	launch        func(launcher.Request) (int, error)
	startDetached func(argv []string, dir string) (int, error)
	notify        func(title, message, sound string) error
}

// NewRunner returns a runner wired to the real launcher and notifier.
func NewRunner(s *settings.Settings, st *state.Store, h *history.Store, log *Logger) *Runner {
	return &Runner{
		settings:      s,
		state:         st,
		history:       h,
		log:           log,
		launch:        launcher.Launch,
		startDetached: launcher.StartDetached,
		notify:        notify.Send,
	}
}

// Run performs the continuation for the given stop event. A disabled tool is
// a quiet no-op. Any failure after the enabled check is logged with context
// and returned as a single error; Run never panics upward.
func (r *Runner) Run(p hook.Payload) error {
	tool := p.Tool
	if !r.settings.Enabled(tool) {
		r.log.Log("continuation disabled for %s, nothing to do", tool)
		r.record(history.Event{Tool: tool, Target: r.settings.TargetFor(tool), Dir: p.WorkDir,
			Status: history.StatusSkipped, Detail: "continuation disabled"})
		return nil
	}

	target := r.settings.TargetFor(tool)
	r.log.Log("continuing %s -> %s in %s", tool, target, p.WorkDir)

	if r.settings.KillPrevious {
		if r.state.KillOldSession(target) {
			r.log.Log("terminated tracked %s session", target)
		}
	}

	if r.settings.Notify.Enabled {
		msg := prompt.Render(r.settings.Notify.Message, prompt.Values{Source: tool, Target: target})
		if err := r.notify("vomgr", msg, r.settings.Notify.Sound); err != nil {
			// Advisory only; the relaunch must not depend on the desktop.
			r.log.Log("notification failed: %v", err)
		}
	}

	values := prompt.Values{
		Todo:       prompt.CollectTodo(p.WorkDir),
		Plan:       prompt.CollectPlan(p.WorkDir),
		Transcript: p.Transcript,
		Source:     tool,
		Target:     target,
	}
	text := prompt.Render(r.settings.PromptFor(tool), values)

	req := launcher.Request{Tool: target, Dir: p.WorkDir, Prompt: text, Continue: true}
	pid, err := r.start(req)
	if err != nil {
		r.log.Log("launching %s failed: %v", target, err)
		r.record(history.Event{Tool: tool, Target: target, Dir: p.WorkDir,
			Status: history.StatusFailed, Detail: err.Error()})
		return fmt.Errorf("launching %s: %w", target, err)
	}
	r.log.Log("launched %s (pid %d)", target, pid)

	info := state.SessionInfo{
		Tool:             target,
		PID:              pid,
		StartedAt:        time.Now(),
		WorkingDirectory: p.WorkDir,
	}
	if err := r.state.Write(target, info); err != nil {
		r.log.Log("recording session state failed: %v", err)
		r.record(history.Event{Tool: tool, Target: target, PID: pid, Dir: p.WorkDir,
			Status: history.StatusFailed, Detail: err.Error()})
		return fmt.Errorf("recording session state: %w", err)
	}

	r.record(history.Event{Tool: tool, Target: target, PID: pid, Dir: p.WorkDir,
		Status: history.StatusLaunched})
	return nil
}

// start launches the request, wrapped in the configured terminal emulator
// when one is set and present. A missing emulator degrades to a direct
// launch rather than failing the run.
func (r *Runner) start(req launcher.Request) (int, error) {
	tpl := r.settings.TerminalCommand
	if tpl == "" {
		return r.launch(req)
	}
	if !terminal.Available(tpl) {
		r.log.Log("terminal emulator unavailable (%s), launching %s directly", tpl, req.Tool)
		return r.launch(req)
	}

	argv, err := launcher.Command(req)
	if err != nil {
		return 0, err
	}
	return r.startDetached(terminal.Wrap(tpl, argv, req.Dir), req.Dir)
}

// record logs a history event best-effort. The history store is advisory and
// must never turn a successful relaunch into a failure.
func (r *Runner) record(e history.Event) {
	if r.history == nil {
		return
	}
	if _, err := r.history.Record(&e); err != nil {
		r.log.Log("recording history event failed: %v", err)
	}
}
