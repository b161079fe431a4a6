//go:build windows

package main

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr starts the server in its own process group so Ctrl+C in the
// CLI's console does not reach it
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
