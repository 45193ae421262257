//go:build !windows

// Package process terminates the headless browser started for PDF export
// together with its helper processes.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Chrome forks renderer and GPU helpers that outlive the parent when only
// the parent is killed. Errors are ignored; callers also call launcher.Kill.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
