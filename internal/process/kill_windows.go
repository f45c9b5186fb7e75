//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a browser process and its helpers with taskkill
// (/F force, /T tree). A zero or negative pid is ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards as a fallback.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
