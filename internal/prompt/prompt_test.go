package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender_AllPlaceholders(t *testing.T) {
	got := Render("TODO:{todo} PLAN:{plan} LOG:{transcript}", Values{
		Todo:       "a",
		Plan:       "b",
		Transcript: "c",
	})
	if got != "TODO:a PLAN:b LOG:c" {
		t.Errorf("unexpected render: %q", got)
	}
}

func TestRender_MissingValuesAreEmpty(t *testing.T) {
	got := Render("TODO:{todo} PLAN:{plan} LOG:{transcript}", Values{Todo: "a"})
	if got != "TODO:a PLAN: LOG:" {
		t.Errorf("expected empty substitution for missing values, got %q", got)
	}
	if strings.Contains(got, "nil") || strings.Contains(got, "<") {
		t.Errorf("missing values must not render a marker: %q", got)
	}
}

func TestRender_UnknownPlaceholderLeftAlone(t *testing.T) {
	got := Render("keep {mystery} and {todo}", Values{Todo: "x"})
	if got != "keep {mystery} and x" {
		t.Errorf("unexpected render: %q", got)
	}
}

func TestCollectTodo(t *testing.T) {
	dir := t.TempDir()
	content := `# TODO

- [x] done already
- [ ] first open item
- [ ] second open item
some prose
- [ ] third
- [ ] fourth
- [ ] fifth
- [ ] sixth is beyond the cap
`
	if err := os.WriteFile(filepath.Join(dir, "TODO.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := CollectTodo(dir)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 items, got %d: %q", len(lines), got)
	}
	if lines[0] != "- [ ] first open item" {
		t.Errorf("unexpected first item: %q", lines[0])
	}
	if strings.Contains(got, "done already") {
		t.Error("checked items must be excluded")
	}
	if strings.Contains(got, "sixth") {
		t.Error("items beyond the cap must be excluded")
	}
}

func TestCollectTodo_Missing(t *testing.T) {
	if got := CollectTodo(t.TempDir()); got != "" {
		t.Errorf("expected empty string for missing TODO.md, got %q", got)
	}
}

func TestCollectPlan(t *testing.T) {
	dir := t.TempDir()
	content := "\n\nPhase 1: dig\n\nPhase 2: fill\n"
	if err := os.WriteFile(filepath.Join(dir, "PLAN.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := CollectPlan(dir)
	if got != "Phase 1: dig\nPhase 2: fill" {
		t.Errorf("unexpected plan snippet: %q", got)
	}
}

func TestCollectPlan_Missing(t *testing.T) {
	if got := CollectPlan(t.TempDir()); got != "" {
		t.Errorf("expected empty string for missing PLAN.md, got %q", got)
	}
}
