//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

const createNewProcessGroup = 0x00000200

// setDetached detaches the child into its own process group.
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
