// Package settings loads and persists the user's continuation preferences.
// The settings file is read once at the start of every invocation and treated
// as immutable afterwards; mutation happens only through the vomgr toggles.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Tools lists the assistant CLIs managed by vomgr.
var Tools = []string{"claude", "codex", "gemini"}

const (
	// SettingsFile is the name of the settings document under Dir().
	SettingsFile = "settings.toml"

	// FallbackPrompt is the prompt used when no template is configured at all.
	FallbackPrompt = "Continue working on the current task"
)

// defaultPrompts are the built-in per-tool prompt templates.
var defaultPrompts = map[string]string{
	"claude": "Continue work in the next tool. Outstanding tasks:\n{todo}",
	"codex":  "Pick up the session with these TODOs:\n{todo}",
	"gemini": "Continue assisting with current plan:\n{plan}",
}

// ToolPrefs describes whether continuation is armed for a tool and which
// tool the relaunch should target.
type ToolPrefs struct {
	Enabled bool   `toml:"enabled"`
	Target  string `toml:"target"`
}

// NotifyPrefs describes the advisory notification emitted before a relaunch.
type NotifyPrefs struct {
	Enabled bool   `toml:"enabled"`
	Message string `toml:"message"`
	Sound   string `toml:"sound"`
}

// Settings is the full settings document persisted to settings.toml.
type Settings struct {
	Tools   map[string]ToolPrefs `toml:"tools"`
	Prompts map[string]string    `toml:"prompts"`
	Notify  NotifyPrefs          `toml:"notify"`

	// TerminalCommand, when non-empty, wraps the relaunch command inside a
	// terminal emulator. Whitespace-separated fields; the {command} field is
	// replaced with the fully-formed inner command.
	TerminalCommand string `toml:"terminal_command"`

	// KillPrevious terminates the tracked prior session before relaunching.
	KillPrevious bool `toml:"kill_previous"`
}

// Default returns settings with continuation disabled for every tool,
// notifications off, no terminal wrapping, and kill_previous off.
func Default() *Settings {
	tools := make(map[string]ToolPrefs, len(Tools))
	for _, tool := range Tools {
		tools[tool] = ToolPrefs{Enabled: false, Target: tool}
	}
	return &Settings{
		Tools:   tools,
		Prompts: map[string]string{},
		Notify:  NotifyPrefs{Enabled: false, Message: "Continuing on {target}", Sound: "default"},
	}
}

// Dir returns the vomgr data directory (~/.vomgr).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vomgr"), nil
}

// Path returns the settings file path under dir.
func Path(dir string) string {
	return filepath.Join(dir, SettingsFile)
}

// Load reads settings from path. A missing file yields defaults. A file that
// fails to parse also yields defaults with a warning on stderr; loading never
// fails. Unknown keys in the document are ignored.
func Load(path string) *Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: reading settings: %v\n", err)
		}
		return Default()
	}

	s := Default()
	if err := toml.Unmarshal(data, s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: malformed settings file %s: %v\n", path, err)
		return Default()
	}
	s.normalize()
	return s
}

// Check parses the settings file at path and reports the parse error Load
// hides behind defaults. A missing file is fine.
func Check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var s Settings
	return toml.Unmarshal(data, &s)
}

// Save writes the settings document to path, creating the directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}

// normalize fills in entries for tools missing from the document and clamps
// invalid continuation targets back to claude.
func (s *Settings) normalize() {
	if s.Tools == nil {
		s.Tools = make(map[string]ToolPrefs, len(Tools))
	}
	if s.Prompts == nil {
		s.Prompts = map[string]string{}
	}
	for _, tool := range Tools {
		prefs, ok := s.Tools[tool]
		if !ok {
			s.Tools[tool] = ToolPrefs{Enabled: false, Target: tool}
			continue
		}
		if !KnownTool(prefs.Target) {
			prefs.Target = tool
			s.Tools[tool] = prefs
		}
	}
}

// Enabled reports whether continuation is armed for tool. Tools absent from
// the table are disabled.
func (s *Settings) Enabled(tool string) bool {
	return s.Tools[tool].Enabled
}

// TargetFor returns the continuation target configured for tool. An unset or
// unknown target means the tool continues itself.
func (s *Settings) TargetFor(tool string) string {
	target := s.Tools[tool].Target
	if !KnownTool(target) {
		if KnownTool(tool) {
			return tool
		}
		return "claude"
	}
	return target
}

// PromptFor returns the prompt template for tool: the user's override, then
// the built-in per-tool template, then FallbackPrompt.
func (s *Settings) PromptFor(tool string) string {
	if tpl := s.Prompts[tool]; tpl != "" {
		return tpl
	}
	if tpl := defaultPrompts[tool]; tpl != "" {
		return tpl
	}
	return FallbackPrompt
}

// KnownTool reports whether name is one of the managed assistant CLIs.
func KnownTool(name string) bool {
	for _, tool := range Tools {
		if tool == name {
			return true
		}
	}
	return false
}
