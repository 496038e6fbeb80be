// Package notify emits advisory desktop notifications before a relaunch.
// Notification is best-effort: a missing backend or unsupported platform is a
// no-op, never a failure that reaches the hook's caller.
package notify

import (
	"os/exec"
	"runtime"
	"strings"
)

// Send shows a desktop notification with an alert sound where supported.
func Send(title, message, sound string) error {
	switch runtime.GOOS {
	case "darwin":
		return notifyMacOS(title, message, sound)
	case "linux":
		return notifyLinux(title, message)
	default:
		// Unsupported platform, silently ignore
		return nil
	}
}

// Available reports whether a notification backend exists on this host.
func Available() bool {
	switch runtime.GOOS {
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	default:
		return false
	}
}

func notifyMacOS(title, message, sound string) error {
	script := `display notification "` + escape(message) + `" with title "` + escape(title) + `"`
	if sound != "" {
		script += ` sound name "` + escape(sound) + `"`
	}
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

func notifyLinux(title, message string) error {
	cmd := exec.Command("notify-send", title, message)
	return cmd.Run()
}

// escape neutralizes characters that would break out of the AppleScript
// string literal.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
