// Package wallpaper drives the external wallpaper-rendering daemon. The
// daemon owns the visual transition; this package only hands it the image
// path and transition arguments.
package wallpaper

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ShyamendraHazra/home-config/internal/proc"
)

// Setter applies a wallpaper through the rendering daemon's client command
// (e.g. "swww img <path> --transition-type grow").
type Setter struct {
	command string
	args    []string
	runner  proc.Runner
	logger  hclog.Logger
}

// NewSetter creates a Setter for the given client command and base args.
// The image path is appended after the base args on each call.
func NewSetter(command string, args []string, runner proc.Runner, logger hclog.Logger) *Setter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if runner == nil {
		runner = proc.NewExecRunner()
	}
	return &Setter{
		command: command,
		args:    args,
		runner:  runner,
		logger:  logger.Named("wallpaper"),
	}
}

// Set asks the daemon to display the image at path. Failures are returned to
// the caller, which treats them as best-effort: a failed visual transition
// must not block theme propagation.
func (s *Setter) Set(ctx context.Context, path string) error {
	args := append(append([]string{}, s.args...), path)
	s.logger.Debug("setting wallpaper", "command", s.command, "args", args)

	_, stderr, err := s.runner.Run(ctx, s.command, args, nil)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			return fmt.Errorf("wallpaper daemon failed: %s: %w", msg, err)
		}
		return fmt.Errorf("wallpaper daemon failed: %w", err)
	}

	return nil
}
