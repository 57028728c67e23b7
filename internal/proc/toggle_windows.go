//go:build windows

package proc

import (
	"fmt"
	"os/exec"
)

// terminate is not supported on Windows: the managed desktop processes this
// tool drives are Unix-only.
func terminate(pids []int) error {
	return fmt.Errorf("signal-based process termination is not supported on Windows")
}

// launchDetached starts command without attached stdio and releases it.
func launchDetached(command string, args []string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", command, err)
	}

	return cmd.Process.Release()
}
