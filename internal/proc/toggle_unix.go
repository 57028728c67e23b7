//go:build unix

package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// terminate sends SIGTERM to every PID. Termination is signal-based: the
// process gets a chance to shut down cleanly, there is no forceful kill
// escalation. A failed signal does not stop the remaining PIDs from being
// signalled; the failures are aggregated.
func terminate(pids []int) error {
	var errs []error
	for _, pid := range pids {
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			errs = append(errs, fmt.Errorf("failed to signal PID %d: %w", pid, err))
		}
	}
	return errors.Join(errs...)
}

// launchDetached starts command in its own session with no attached stdio and
// releases the child immediately. The caller does not wait for or supervise
// the process beyond launch.
func launchDetached(command string, args []string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", command, err)
	}

	// Detach so the child is not reaped through us.
	return cmd.Process.Release()
}
