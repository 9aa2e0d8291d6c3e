//go:build !unix

package lint

import (
	"os"
	"os/exec"
)

func isolate(*exec.Cmd) {}

func signalGroup(cmd *exec.Cmd, sig os.Signal) {
	if sig == os.Interrupt {
		// Interrupt is not deliverable on every platform.
		_ = cmd.Process.Kill()
		return
	}
	_ = cmd.Process.Signal(sig)
}
