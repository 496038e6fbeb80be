package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vexyart/vomgr/internal/history"
	"github.com/vexyart/vomgr/internal/hook"
	"github.com/vexyart/vomgr/internal/launcher"
	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
)

// fakeLaunch records launch requests and hands back a fixed pid.
type fakeLaunch struct {
	requests []launcher.Request
	pid      int
	err      error
}

func (f *fakeLaunch) launch(req launcher.Request) (int, error) {
	f.requests = append(f.requests, req)
	return f.pid, f.err
}

func testRunner(t *testing.T, s *settings.Settings, st *state.Store, fake *fakeLaunch) *Runner {
	t.Helper()
	log := NewLogger(t.TempDir(), "test")
	t.Cleanup(func() { log.Close() })
	return &Runner{
		settings: s,
		state:    st,
		log:      log,
		launch:   fake.launch,
		startDetached: func(argv []string, dir string) (int, error) {
			t.Fatalf("unexpected detached start: %v", argv)
			return 0, nil
		},
		notify: func(title, message, sound string) error { return nil },
	}
}

func TestRun_DisabledToolDoesNothing(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)
	fake := &fakeLaunch{pid: 4242}

	r := testRunner(t, settings.Default(), st, fake)
	if err := r.Run(hook.Payload{Tool: "claude", WorkDir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fake.requests) != 0 {
		t.Errorf("expected no launch, got %d", len(fake.requests))
	}
	if _, err := os.Stat(st.Path()); !os.IsNotExist(err) {
		t.Error("expected no session state write for a disabled tool")
	}
}

func TestRun_ReplacesDeadSession(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)
	deadPID := 1 << 30
	if err := st.Write("claude", state.SessionInfo{Tool: "claude", PID: deadPID, StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	s := settings.Default()
	s.Tools["claude"] = settings.ToolPrefs{Enabled: true, Target: "claude"}
	s.KillPrevious = true

	fake := &fakeLaunch{pid: 4242}
	r := testRunner(t, s, st, fake)
	if err := r.Run(hook.Payload{Tool: "claude", WorkDir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fake.requests) != 1 {
		t.Fatalf("expected one launch, got %d", len(fake.requests))
	}
	got := st.Read()["claude"]
	if got.PID != 4242 {
		t.Errorf("session state pid = %d, want 4242", got.PID)
	}
	if got.PID == deadPID {
		t.Error("stale pid survived the relaunch")
	}
}

func TestRun_RoutesToTarget(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)

	s := settings.Default()
	s.Tools["claude"] = settings.ToolPrefs{Enabled: true, Target: "codex"}

	fake := &fakeLaunch{pid: 7}
	r := testRunner(t, s, st, fake)
	if err := r.Run(hook.Payload{Tool: "claude", WorkDir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fake.requests[0].Tool != "codex" {
		t.Errorf("launched %q, want codex", fake.requests[0].Tool)
	}
	if _, ok := st.Read()["codex"]; !ok {
		t.Error("expected session state entry for codex")
	}
}

func TestRun_PromptIncludesContext(t *testing.T) {
	dir := t.TempDir()
	todo := "- [ ] ship it\n- [x] done already\n- [ ] write docs\n"
	if err := os.WriteFile(filepath.Join(dir, "TODO.md"), []byte(todo), 0644); err != nil {
		t.Fatal(err)
	}

	s := settings.Default()
	s.Tools["codex"] = settings.ToolPrefs{Enabled: true, Target: "codex"}
	s.Prompts["codex"] = "from {source} to {target}:\n{todo}"

	fake := &fakeLaunch{pid: 7}
	r := testRunner(t, s, state.NewStore(t.TempDir()), fake)
	if err := r.Run(hook.Payload{Tool: "codex", WorkDir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	prompt := fake.requests[0].Prompt
	if !strings.HasPrefix(prompt, "from codex to codex:") {
		t.Errorf("placeholders not rendered: %q", prompt)
	}
	if !strings.Contains(prompt, "ship it") || !strings.Contains(prompt, "write docs") {
		t.Errorf("expected unchecked TODO items in prompt, got %q", prompt)
	}
	if strings.Contains(prompt, "done already") {
		t.Errorf("checked TODO item leaked into prompt: %q", prompt)
	}
}

func TestRun_LaunchFailureIsRecorded(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)
	hist, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer hist.Close()

	s := settings.Default()
	s.Tools["gemini"] = settings.ToolPrefs{Enabled: true, Target: "gemini"}

	fake := &fakeLaunch{err: errors.New("binary missing")}
	r := testRunner(t, s, st, fake)
	r.history = hist

	if err := r.Run(hook.Payload{Tool: "gemini", WorkDir: dir}); err == nil {
		t.Fatal("expected an error from a failed launch")
	}

	if _, ok := st.Read()["gemini"]; ok {
		t.Error("failed launch must not write session state")
	}
	events, err := hist.Recent("gemini", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Status != history.StatusFailed {
		t.Errorf("expected one failed event, got %+v", events)
	}
	if !strings.Contains(events[0].Detail, "binary missing") {
		t.Errorf("failure detail lost: %q", events[0].Detail)
	}
}

func TestRun_MissingTerminalFallsBackToDirect(t *testing.T) {
	dir := t.TempDir()

	s := settings.Default()
	s.Tools["claude"] = settings.ToolPrefs{Enabled: true, Target: "claude"}
	s.TerminalCommand = "definitely-not-a-terminal-9000 -- {command}"

	fake := &fakeLaunch{pid: 7}
	r := testRunner(t, s, state.NewStore(dir), fake)
	if err := r.Run(hook.Payload{Tool: "claude", WorkDir: dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("expected a direct launch, got %d", len(fake.requests))
	}
}
