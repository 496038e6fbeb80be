//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// setDetached puts the child in its own session so it survives the hook
// process exiting and is not killed by the caller's terminal teardown.
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
