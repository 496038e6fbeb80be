package hook

import "io"

// ParseClaude normalizes a Claude stop-hook payload. Claude pipes a JSON
// document on stdin (or as a single CLI argument) with a transcript_path
// field naming the session transcript file.
func ParseClaude(r io.Reader, args []string) Payload {
	payload := readPayload(r)
	if len(payload) == 0 && len(args) > 0 {
		payload = readPayload(stringsReader(args[0]))
	}

	transcript := stringField(payload, "transcript")
	if transcript == "" {
		transcript = readTranscriptFile(stringField(payload, "transcript_path"))
	}

	return Payload{
		Tool:       "claude",
		Reason:     stringField(payload, "reason", "hook_event_name"),
		WorkDir:    resolveWorkDir(stringField(payload, "project_dir"), stringField(payload, "cwd")),
		Transcript: transcript,
		Raw:        payload,
	}
}
