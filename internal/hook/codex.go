package hook

import "io"

// ParseCodex normalizes a Codex notify payload. The context field is
// polymorphic: a JSON object, a double-encoded JSON string, or a bare string
// (path or literal transcript text). See contextValue for the resolution
// order; malformed input degrades to an empty transcript, never an error.
func ParseCodex(r io.Reader, args []string) Payload {
	payload := readPayload(r)
	if len(payload) == 0 && len(args) > 0 {
		payload = readPayload(stringsReader(args[0]))
	}

	transcript, ctxDir := contextValue(payload["context"])
	if transcript == "" {
		transcript = stringField(payload, "transcript")
	}

	return Payload{
		Tool:       "codex",
		Reason:     stringField(payload, "reason", "type"),
		WorkDir:    resolveWorkDir(ctxDir, stringField(payload, "cwd")),
		Transcript: transcript,
		Raw:        payload,
	}
}
