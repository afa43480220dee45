//go:build !windows

package cmd

import (
	"os"
	"os/exec"
	"syscall"
)

// detachChild starts the background server in its own session so it
// outlives the terminal that ran 'serve start'.
func detachChild(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// shutdownSignals are the signals that stop a foreground server or MCP session.
func shutdownSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// stopSignal asks the background server to shut down gracefully.
func stopSignal() syscall.Signal { return syscall.SIGTERM }

// killSignal is sent when the server ignores stopSignal.
func killSignal() syscall.Signal { return syscall.SIGKILL }
