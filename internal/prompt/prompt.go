// Package prompt renders relaunch prompts from user templates and gathers
// the TODO/PLAN context snippets referenced by the placeholders.
package prompt

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	todoFile = "TODO.md"
	planFile = "PLAN.md"

	// maxContextLines caps how much of TODO.md/PLAN.md is pulled into a prompt.
	maxContextLines = 5
)

// Values holds the substitution text for the template placeholders. Empty
// fields substitute as empty strings.
type Values struct {
	Todo       string
	Plan       string
	Transcript string
	Source     string
	Target     string
}

// Render substitutes {todo}, {plan}, {transcript}, {source}, and {target} in
// template. Placeholders outside this set are left as-is. Render never fails.
func Render(template string, v Values) string {
	r := strings.NewReplacer(
		"{todo}", v.Todo,
		"{plan}", v.Plan,
		"{transcript}", v.Transcript,
		"{source}", v.Source,
		"{target}", v.Target,
	)
	return r.Replace(template)
}

// CollectTodo returns the first unchecked TODO entries from dir/TODO.md,
// joined by newlines. A missing or unreadable file yields the empty string.
func CollectTodo(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, todoFile))
	if err != nil {
		return ""
	}

	var items []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- [ ]") {
			items = append(items, line)
			if len(items) == maxContextLines {
				break
			}
		}
	}
	return strings.Join(items, "\n")
}

// CollectPlan returns a short snippet from dir/PLAN.md: the first non-empty
// lines, joined by newlines. A missing or unreadable file yields the empty
// string.
func CollectPlan(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, planFile))
	if err != nil {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
			if len(lines) == maxContextLines {
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
