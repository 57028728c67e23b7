package render

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/ShyamendraHazra/home-config/internal/palette"
)

// ErrRenderFailed indicates a target could not be rendered. Render failures
// are isolated per target: the orchestrator logs them and continues with the
// remaining targets.
var ErrRenderFailed = errors.New("render failed")

// Context carries the per-apply inputs every strategy may draw on: the
// palette artifact (read-only) and the wallpaper selection that produced it.
type Context struct {
	Artifact  *palette.Artifact
	Wallpaper string
}

// strategy produces a target's destination file from the render context.
// The three implementations form a closed set; targets select one by tag.
type strategy interface {
	render(t Target, rc Context) error
}

// Renderer dispatches targets to their render strategy.
type Renderer struct {
	strategies map[Strategy]strategy
	logger     hclog.Logger
}

// New creates a Renderer with the built-in strategies.
func New(logger hclog.Logger) *Renderer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("render")

	return &Renderer{
		strategies: map[Strategy]strategy{
			StrategyCopy:     &copyStrategy{},
			StrategyTemplate: &templateStrategy{},
			StrategyKeyPatch: &keyPatchStrategy{logger: logger},
		},
		logger: logger,
	}
}

// Render produces the destination file for one target.
func (r *Renderer) Render(t Target, rc Context) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if rc.Artifact == nil {
		return fmt.Errorf("%w: target %s: no palette artifact", ErrRenderFailed, t.Name)
	}

	s, ok := r.strategies[t.Strategy]
	if !ok {
		return fmt.Errorf("%w: target %s: unknown strategy %q", ErrRenderFailed, t.Name, t.Strategy)
	}

	r.logger.Debug("rendering target", "target", t.Name, "strategy", t.Strategy, "destination", t.Destination)

	if err := s.render(t, rc); err != nil {
		return fmt.Errorf("%w: target %s: %v", ErrRenderFailed, t.Name, err)
	}

	return nil
}
