// Package terminal wraps a relaunch command for execution inside a terminal
// emulator. The user configures a whitespace-separated command template; the
// {command} field is replaced by the fully-formed inner shell command.
package terminal

import (
	"os/exec"
	"strings"
)

// Wrap expands template into an argv, substituting {command} with a shell
// command that changes into dir and runs innerArgv. Each template field is
// substituted independently, so a bare {command} field becomes one argument.
func Wrap(template string, innerArgv []string, dir string) []string {
	inner := shellCommand(innerArgv, dir)
	fields := strings.Fields(template)
	argv := make([]string, 0, len(fields))
	for _, field := range fields {
		argv = append(argv, strings.ReplaceAll(field, "{command}", inner))
	}
	return argv
}

// Available reports whether the emulator named by the template's first field
// is installed. An empty template means no wrapping is configured.
func Available(template string) bool {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}

// shellCommand renders argv as a single shell command string, cd-ing into dir
// first when set.
func shellCommand(argv []string, dir string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	command := strings.Join(quoted, " ")
	if dir != "" {
		command = "cd " + quoteArg(dir) + " && " + command
	}
	return command
}

// quoteArg single-quotes arg for POSIX shells when it contains anything
// beyond plain word characters.
func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$&|;<>()*?[]#~%{}`!") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
