// Package hook normalizes each assistant's native stop-notification payload
// into one canonical shape for the continuation engine. Per-assistant parsing
// quirks live here so the engine never branches on the source tool's format.
package hook

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Payload is the normalized stop notification shared by all assistants.
type Payload struct {
	Tool       string
	Reason     string
	WorkDir    string
	Transcript string
	Raw        map[string]any
}

// maxStdinBytes caps the stdin read. Hook payloads are small JSON objects.
const maxStdinBytes = 1 << 20

// stringsReader adapts a CLI-argument payload to the stdin reader path.
func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

// readPayload decodes a JSON object from r. Empty or malformed input yields
// an empty map; reading never fails.
func readPayload(r io.Reader) map[string]any {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes))
	if err != nil {
		return map[string]any{}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return map[string]any{}
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload
}

// stringField returns the first non-empty string among the named fields.
func stringField(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveWorkDir picks the first candidate naming an existing directory,
// falling back to $PWD and then the process working directory.
func resolveWorkDir(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	if pwd := os.Getenv("PWD"); pwd != "" {
		if info, err := os.Stat(pwd); err == nil && info.IsDir() {
			return pwd
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// readTranscriptFile returns the contents of path, or empty when unreadable.
func readTranscriptFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// contextValue resolves the polymorphic "context" field used by Codex-style
// payloads. The value may be a JSON object, a JSON-encoded string (double
// encoded), or a bare string. A bare string that parses as JSON is unwrapped;
// an absolute path has its contents read (unreadable path yields empty); any
// other string is the transcript text itself.
func contextValue(value any) (transcript, workDir string) {
	switch v := value.(type) {
	case map[string]any:
		return stringField(v, "transcript"), stringField(v, "cwd", "working_directory")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", ""
		}
		var nested map[string]any
		if err := json.Unmarshal([]byte(s), &nested); err == nil && nested != nil {
			return stringField(nested, "transcript"), stringField(nested, "cwd", "working_directory")
		}
		if filepath.IsAbs(s) {
			return readTranscriptFile(s), ""
		}
		return s, ""
	}
	return "", ""
}
