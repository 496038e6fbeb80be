package hook

import "io"

// ParseGemini normalizes a Gemini stop payload: a flat JSON document with
// optional reason, cwd, and transcript fields.
func ParseGemini(r io.Reader, args []string) Payload {
	payload := readPayload(r)
	if len(payload) == 0 && len(args) > 0 {
		payload = readPayload(stringsReader(args[0]))
	}

	return Payload{
		Tool:       "gemini",
		Reason:     stringField(payload, "reason"),
		WorkDir:    resolveWorkDir(stringField(payload, "cwd"), stringField(payload, "project_dir")),
		Transcript: stringField(payload, "transcript"),
		Raw:        payload,
	}
}
