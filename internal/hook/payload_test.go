package hook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCodex_DoubleEncodedContext(t *testing.T) {
	in := strings.NewReader(`{"context": "{\"transcript\": \"hi\"}"}`)

	p := ParseCodex(in, nil)
	if p.Transcript != "hi" {
		t.Errorf("expected transcript %q, got %q", "hi", p.Transcript)
	}
	if p.Tool != "codex" {
		t.Errorf("expected tool codex, got %q", p.Tool)
	}
}

func TestParseCodex_ContextObject(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader(`{"context": {"transcript": "from object", "cwd": "` + dir + `"}}`)

	p := ParseCodex(in, nil)
	if p.Transcript != "from object" {
		t.Errorf("expected transcript from object, got %q", p.Transcript)
	}
	if p.WorkDir != dir {
		t.Errorf("expected workdir %q, got %q", dir, p.WorkDir)
	}
}

func TestParseCodex_ContextPathMissing(t *testing.T) {
	in := strings.NewReader(`{"context": "/tmp/doesnotexist-vomgr-test"}`)

	p := ParseCodex(in, nil)
	if p.Transcript != "" {
		t.Errorf("expected empty transcript for unreadable path, got %q", p.Transcript)
	}
}

func TestParseCodex_ContextPathReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	if err := os.WriteFile(path, []byte("session log"), 0644); err != nil {
		t.Fatal(err)
	}
	in := strings.NewReader(`{"context": "` + path + `"}`)

	p := ParseCodex(in, nil)
	if p.Transcript != "session log" {
		t.Errorf("expected file contents, got %q", p.Transcript)
	}
}

func TestParseCodex_ContextRawText(t *testing.T) {
	in := strings.NewReader(`{"context": "raw text"}`)

	p := ParseCodex(in, nil)
	if p.Transcript != "raw text" {
		t.Errorf("expected raw text passthrough, got %q", p.Transcript)
	}
}

func TestParseCodex_MalformedInput(t *testing.T) {
	p := ParseCodex(strings.NewReader("][ nope"), nil)
	if p.Transcript != "" {
		t.Errorf("expected empty transcript, got %q", p.Transcript)
	}
	if p.Tool != "codex" {
		t.Errorf("tool must still be set, got %q", p.Tool)
	}
}

func TestParseClaude_TranscriptPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	if err := os.WriteFile(path, []byte("line one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	in := strings.NewReader(`{"transcript_path": "` + path + `", "cwd": "` + dir + `", "reason": "stop"}`)

	p := ParseClaude(in, nil)
	if p.Transcript != "line one\n" {
		t.Errorf("expected transcript file contents, got %q", p.Transcript)
	}
	if p.WorkDir != dir {
		t.Errorf("expected workdir %q, got %q", dir, p.WorkDir)
	}
	if p.Reason != "stop" {
		t.Errorf("expected reason stop, got %q", p.Reason)
	}
}

func TestParseClaude_PayloadAsArgument(t *testing.T) {
	p := ParseClaude(strings.NewReader(""), []string{`{"reason": "end_turn"}`})
	if p.Reason != "end_turn" {
		t.Errorf("expected reason from CLI argument, got %q", p.Reason)
	}
}

func TestParseClaude_EmptyInput(t *testing.T) {
	p := ParseClaude(strings.NewReader(""), nil)
	if p.Tool != "claude" {
		t.Errorf("expected tool claude, got %q", p.Tool)
	}
	if p.Transcript != "" {
		t.Errorf("expected empty transcript, got %q", p.Transcript)
	}
	if p.WorkDir == "" {
		t.Error("workdir must fall back to a usable directory")
	}
}

func TestParseGemini_Flat(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader(`{"reason": "done", "cwd": "` + dir + `", "transcript": "t"}`)

	p := ParseGemini(in, nil)
	if p.Reason != "done" || p.WorkDir != dir || p.Transcript != "t" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestResolveWorkDir_PrefersExisting(t *testing.T) {
	dir := t.TempDir()
	got := resolveWorkDir("/nonexistent/path", dir)
	if got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
}
