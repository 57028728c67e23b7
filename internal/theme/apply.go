// Package theme implements the apply-theme orchestrator: persist the
// selection, extract the palette, fan it out to every configured target, and
// bounce the consumer processes that must pick the new config up.
package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ShyamendraHazra/home-config/internal/palette"
	"github.com/ShyamendraHazra/home-config/internal/proc"
	"github.com/ShyamendraHazra/home-config/internal/render"
	"github.com/ShyamendraHazra/home-config/internal/selection"
	"github.com/ShyamendraHazra/home-config/internal/wallpaper"
)

// Options wires the orchestrator's collaborators. All fields are required
// except LockFile (no serialization when empty) and Logger.
type Options struct {
	Store      *selection.Store
	Wallpaper  *wallpaper.Setter
	Extractor  *palette.Extractor
	Renderer   *render.Renderer
	Controller *proc.Controller

	Targets   []render.Target
	Processes []proc.ManagedProcess

	// LockFile serializes concurrent apply operations via an exclusive
	// file lock held for the whole run.
	LockFile string

	Logger hclog.Logger
}

// Failure records one isolated, non-fatal failure during an apply.
type Failure struct {
	Name string
	Err  error
}

// Result summarises one apply operation. Partial theming is an accepted
// degraded state: failed targets and processes are reported here, not
// surfaced as a fatal error.
type Result struct {
	Wallpaper       string
	WallpaperSet    bool
	Rendered        []string
	FailedTargets   []Failure
	Bounced         []string
	FailedProcesses []Failure
}

// Summary returns a short human-readable account of the apply.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "applied %s: %d target(s) rendered, %d process(es) refreshed",
		r.Wallpaper, len(r.Rendered), len(r.Bounced))
	if len(r.FailedTargets) > 0 {
		names := make([]string, len(r.FailedTargets))
		for i, f := range r.FailedTargets {
			names[i] = f.Name
		}
		fmt.Fprintf(&b, "; failed targets: %s", strings.Join(names, ", "))
	}
	if len(r.FailedProcesses) > 0 {
		names := make([]string, len(r.FailedProcesses))
		for i, f := range r.FailedProcesses {
			names[i] = f.Name
		}
		fmt.Fprintf(&b, "; failed processes: %s", strings.Join(names, ", "))
	}
	return b.String()
}

// Orchestrator drives one apply-theme operation end to end. It owns the
// lifecycle of the palette artifact and render results for the duration of a
// single Apply; the selection store is the only durable state.
type Orchestrator struct {
	opts   Options
	logger hclog.Logger
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Orchestrator{
		opts:   opts,
		logger: logger.Named("theme"),
	}
}

// Apply runs the full sequence for the wallpaper image at imagePath:
//
//  1. Persist the selection (fatal on failure).
//  2. Hand the image to the wallpaper daemon (best-effort).
//  3. Extract the palette (fatal on failure; nothing is rendered from a
//     missing palette).
//  4. Render every configured target (failures isolated per target).
//  5. Bounce each managed process whose config was just re-rendered
//     (failures isolated per process).
//
// A non-nil error means one of the fatal steps failed. Per-target and
// per-process failures are reported through the Result only. There are no
// retries and no rollback: re-running Apply is the recovery path.
func (o *Orchestrator) Apply(ctx context.Context, imagePath string) (*Result, error) {
	if o.opts.LockFile != "" {
		unlock, err := acquireLock(o.opts.LockFile)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire apply lock: %w", err)
		}
		defer unlock()
	}

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}

	result := &Result{Wallpaper: absPath}

	// Step 1: persist the selection. This is not rolled back even if a
	// later fatal step aborts the operation.
	if err := o.opts.Store.Set(absPath); err != nil {
		return nil, fmt.Errorf("failed to persist selection: %w", err)
	}
	o.logger.Debug("persisted selection", "path", absPath)

	// Step 2: wallpaper daemon, best-effort.
	if err := o.opts.Wallpaper.Set(ctx, absPath); err != nil {
		o.logger.Warn("wallpaper transition failed, continuing", "error", err)
	} else {
		result.WallpaperSet = true
	}

	// Step 3: palette extraction, fatal.
	artifact, err := o.opts.Extractor.Extract(ctx, absPath)
	if err != nil {
		return nil, err
	}

	o.renderTargets(ctx, artifact, result)
	o.bounceProcesses(ctx, result)

	o.logger.Info("theme applied",
		"wallpaper", absPath,
		"rendered", len(result.Rendered),
		"failed_targets", len(result.FailedTargets),
		"bounced", len(result.Bounced),
		"failed_processes", len(result.FailedProcesses))

	return result, nil
}

// renderTargets runs step 4. Each target's failure is isolated: one broken
// destination must not prevent the others from rendering.
func (o *Orchestrator) renderTargets(ctx context.Context, artifact *palette.Artifact, result *Result) {
	rc := render.Context{Artifact: artifact, Wallpaper: result.Wallpaper}

	for _, t := range o.opts.Targets {
		if ctx.Err() != nil {
			o.logger.Warn("apply cancelled, skipping remaining targets", "error", ctx.Err())
			return
		}

		if err := o.opts.Renderer.Render(t, rc); err != nil {
			o.logger.Error("target render failed, continuing", "target", t.Name, "error", err)
			result.FailedTargets = append(result.FailedTargets, Failure{Name: t.Name, Err: err})
			continue
		}
		result.Rendered = append(result.Rendered, t.Name)
	}
}

// bounceProcesses runs step 5: every managed process referenced by a target
// that actually rendered is flipped into a freshly-launched state. A running
// process is toggled twice (stop, then start) so the new instance reads the
// new config; a stopped one is toggled once. Failures are isolated per
// process.
func (o *Orchestrator) bounceProcesses(ctx context.Context, result *Result) {
	rendered := make(map[string]bool, len(result.Rendered))
	for _, name := range result.Rendered {
		rendered[name] = true
	}

	seen := make(map[string]bool)
	for _, t := range o.opts.Targets {
		if t.Process == "" || !rendered[t.Name] || seen[t.Process] {
			continue
		}
		seen[t.Process] = true

		if ctx.Err() != nil {
			o.logger.Warn("apply cancelled, skipping remaining processes", "error", ctx.Err())
			return
		}

		mp, ok := o.lookupProcess(t.Process)
		if !ok {
			result.FailedProcesses = append(result.FailedProcesses, Failure{
				Name: t.Process,
				Err:  fmt.Errorf("process %q not configured", t.Process),
			})
			continue
		}

		if err := o.bounce(mp); err != nil {
			o.logger.Error("process refresh failed, continuing", "process", mp.Name, "error", err)
			result.FailedProcesses = append(result.FailedProcesses, Failure{Name: mp.Name, Err: err})
			continue
		}
		result.Bounced = append(result.Bounced, mp.Name)
	}
}

// bounce guarantees a fresh instance of mp regardless of prior state. Toggle
// is a flip, not a restart, so a running process needs two flips.
func (o *Orchestrator) bounce(mp proc.ManagedProcess) error {
	running, err := o.opts.Controller.IsRunning(mp.Name)
	if err != nil {
		return err
	}

	if running {
		if _, err := o.opts.Controller.Toggle(mp); err != nil {
			return err
		}
		if err := o.opts.Controller.WaitFor(mp.Name, proc.Stopped, stopTimeout); err != nil {
			return err
		}
	}

	_, err = o.opts.Controller.Toggle(mp)
	return err
}

// stopTimeout bounds the wait for a signalled process to leave the process
// table before it is relaunched.
const stopTimeout = 3 * time.Second

func (o *Orchestrator) lookupProcess(name string) (proc.ManagedProcess, bool) {
	for _, mp := range o.opts.Processes {
		if mp.Name == name {
			return mp, true
		}
	}
	return proc.ManagedProcess{}, false
}
