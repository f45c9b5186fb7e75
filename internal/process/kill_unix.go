//go:build !windows

package process

import "syscall"

// KillProcessGroup kills a browser process and its helpers by sending
// SIGKILL to the process group (negative PID). A zero or negative pid is
// ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
