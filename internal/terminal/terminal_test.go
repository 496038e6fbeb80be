package terminal

import (
	"strings"
	"testing"
)

func TestWrap_SubstitutesCommandField(t *testing.T) {
	argv := Wrap("gnome-terminal -- bash -lc {command}", []string{"claude", "--continue"}, "/work")

	want := []string{"gnome-terminal", "--", "bash", "-lc", "cd /work && claude --continue"}
	if len(argv) != len(want) {
		t.Fatalf("unexpected argv length: %v", argv)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestWrap_QuotesPromptArgument(t *testing.T) {
	argv := Wrap("xterm -e {command}", []string{"gemini", "-c", "-y", "do the thing"}, "")

	last := argv[len(argv)-1]
	if !strings.Contains(last, "'do the thing'") {
		t.Errorf("prompt with spaces must be quoted: %q", last)
	}
}

func TestWrap_NoDir(t *testing.T) {
	argv := Wrap("konsole -e {command}", []string{"codex"}, "")
	if strings.Contains(argv[len(argv)-1], "cd ") {
		t.Errorf("no cd prefix expected: %q", argv[len(argv)-1])
	}
}

func TestAvailable(t *testing.T) {
	if Available("") {
		t.Error("empty template must report unavailable")
	}
	if Available("vomgr-test-no-such-terminal -e {command}") {
		t.Error("missing emulator must report unavailable")
	}
	if !Available("sh -c {command}") {
		t.Error("sh should be available on any test host")
	}
}

func TestQuoteArg(t *testing.T) {
	if got := quoteArg("plain"); got != "plain" {
		t.Errorf("plain word must pass through, got %q", got)
	}
	if got := quoteArg("it's"); got != `'it'\''s'` {
		t.Errorf("unexpected quoting: %q", got)
	}
	if got := quoteArg(""); got != "''" {
		t.Errorf("empty arg must quote to '', got %q", got)
	}
}
