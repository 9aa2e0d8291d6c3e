//go:build unix

package lint

import (
	"os"
	"os/exec"
	"syscall"
)

// isolate starts cmd in its own process group so signals reach the
// children it spawns, which would otherwise hold the output pipes open.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup delivers sig to the process group of cmd.
func signalGroup(cmd *exec.Cmd, sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, s); err != nil {
		_ = cmd.Process.Signal(sig)
	}
}
