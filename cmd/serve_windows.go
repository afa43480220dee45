//go:build windows

package cmd

import (
	"os"
	"os/exec"
	"syscall"
)

// detachChild is a no-op on Windows (no Setsid equivalent).
func detachChild(_ *exec.Cmd) {}

// shutdownSignals are the signals that stop a foreground server or MCP session.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// stopSignal is a kill on Windows, where a process cannot be sent SIGTERM.
func stopSignal() syscall.Signal { return syscall.SIGKILL }

// killSignal is sent when the server ignores stopSignal.
func killSignal() syscall.Signal { return syscall.SIGKILL }
