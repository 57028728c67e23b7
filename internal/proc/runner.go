// Package proc manages the long-running consumer processes that must be
// bounced for a configuration change to take visible effect.
package proc

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Runner runs an external command to completion and hands back both output
// streams. The palette extractor and the wallpaper client take a Runner so
// their tests can substitute canned results for real subprocesses.
type Runner interface {
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// ExecRunner is the os/exec-backed Runner used outside of tests.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, capturing stdout and stderr separately. Stderr
// is returned even on failure so callers can surface the tool's own
// diagnostics.
func (r *ExecRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
