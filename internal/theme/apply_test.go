package theme

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShyamendraHazra/home-config/internal/palette"
	"github.com/ShyamendraHazra/home-config/internal/proc"
	"github.com/ShyamendraHazra/home-config/internal/render"
	"github.com/ShyamendraHazra/home-config/internal/selection"
	"github.com/ShyamendraHazra/home-config/internal/wallpaper"
)

// fakeRunner simulates the external palette tool and wallpaper daemon,
// failing selectively per command.
type fakeRunner struct {
	failCommands map[string]bool
	calls        []string
}

func (r *fakeRunner) Run(_ context.Context, path string, args []string, _ io.Reader) ([]byte, []byte, error) {
	r.calls = append(r.calls, path)
	if r.failCommands[path] {
		return nil, []byte(path + " blew up"), errors.New("exit status 1")
	}
	return nil, nil, nil
}

// fixture bundles everything one orchestrator test needs.
type fixture struct {
	opts      Options
	runner    *fakeRunner
	store     *selection.Store
	imagePath string
	destDir   string
}

// newFixture builds a full orchestrator wiring over temp directories: a
// valid PNG, a pre-populated artifact bundle, and copy/template/key-patch
// targets rendering into destDir.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Wallpaper image.
	imagePath := filepath.Join(t.TempDir(), "wall.png")
	f, err := os.Create(imagePath)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	f.Close()

	// Artifact bundle the "tool" leaves behind.
	cacheDir := t.TempDir()
	var colors strings.Builder
	for i := 0; i < palette.Size; i++ {
		fmt.Fprintf(&colors, "#%02x%02x%02x\n", i, i, i)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, palette.ColorsFileName), []byte(colors.String()), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "colors-waybar.css"), []byte("/* waybar */\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	destDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(destDir, "kdeglobals"), []byte("BackgroundNormal=1,2,3\nOther=x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	runner := &fakeRunner{failCommands: map[string]bool{}}
	store := selection.NewStore(filepath.Join(t.TempDir(), "wallpaper"))

	targets := []render.Target{
		{
			Name:        "statusbar",
			Strategy:    render.StrategyCopy,
			Source:      "colors-waybar.css",
			Destination: filepath.Join(destDir, "colors.css"),
		},
		{
			Name:        "lockscreen",
			Strategy:    render.StrategyTemplate,
			Template:    "lockscreen.conf",
			Destination: filepath.Join(destDir, "hyprlock.conf"),
		},
		{
			Name:        "desktop-settings",
			Strategy:    render.StrategyKeyPatch,
			Destination: filepath.Join(destDir, "kdeglobals"),
			Keys:        map[string]string{"BackgroundNormal": "background"},
		},
	}

	return &fixture{
		opts: Options{
			Store:      store,
			Wallpaper:  wallpaper.NewSetter("swww", []string{"img"}, runner, nil),
			Extractor:  palette.NewExtractor("wal", []string{"-n", "-q", "-i"}, cacheDir, runner, nil),
			Renderer:   render.New(nil),
			Controller: proc.NewController(nil),
			Targets:    targets,
		},
		runner:    runner,
		store:     store,
		imagePath: imagePath,
		destDir:   destDir,
	}
}

func TestOrchestrator_Apply(t *testing.T) {
	fx := newFixture(t)

	result, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Selection reflects the applied wallpaper.
	got, err := fx.store.Get()
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	abs, _ := filepath.Abs(fx.imagePath)
	if got != abs {
		t.Errorf("store.Get() = %q, want %q", got, abs)
	}

	if !result.WallpaperSet {
		t.Error("WallpaperSet = false, want true")
	}
	if len(result.Rendered) != 3 {
		t.Errorf("Rendered = %v, want 3 targets", result.Rendered)
	}
	if len(result.FailedTargets) != 0 {
		t.Errorf("FailedTargets = %v, want none", result.FailedTargets)
	}

	// All three destinations exist with themed content.
	css, err := os.ReadFile(filepath.Join(fx.destDir, "colors.css"))
	if err != nil {
		t.Fatalf("statusbar destination missing: %v", err)
	}
	if string(css) != "/* waybar */\n" {
		t.Errorf("statusbar content = %q", css)
	}

	kde, err := os.ReadFile(filepath.Join(fx.destDir, "kdeglobals"))
	if err != nil {
		t.Fatalf("desktop-settings destination missing: %v", err)
	}
	if !strings.Contains(string(kde), "BackgroundNormal=0,0,0") {
		t.Errorf("kdeglobals not patched: %q", kde)
	}
	if !strings.Contains(string(kde), "Other=x") {
		t.Errorf("kdeglobals lost unrelated line: %q", kde)
	}

	lock, err := os.ReadFile(filepath.Join(fx.destDir, "hyprlock.conf"))
	if err != nil {
		t.Fatalf("lockscreen destination missing: %v", err)
	}
	if !strings.Contains(string(lock), "path = "+abs) {
		t.Errorf("lockscreen missing wallpaper path: %q", lock)
	}
}

func TestOrchestrator_WallpaperFailureIsBestEffort(t *testing.T) {
	fx := newFixture(t)
	fx.runner.failCommands["swww"] = true

	result, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if result.WallpaperSet {
		t.Error("WallpaperSet = true, want false")
	}
	if len(result.Rendered) != 3 {
		t.Errorf("Rendered = %v, want all targets despite wallpaper failure", result.Rendered)
	}
}

func TestOrchestrator_ExtractionFailureIsFatal(t *testing.T) {
	fx := newFixture(t)
	fx.runner.failCommands["wal"] = true

	_, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if !errors.Is(err, palette.ErrExtractionFailed) {
		t.Fatalf("Apply() error = %v, want ErrExtractionFailed", err)
	}

	// No target was rendered from the missing palette.
	if _, err := os.Stat(filepath.Join(fx.destDir, "colors.css")); !os.IsNotExist(err) {
		t.Error("statusbar destination should not exist after fatal extraction")
	}

	// The selection still reflects the attempted path; it is not rolled back.
	got, err := fx.store.Get()
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	abs, _ := filepath.Abs(fx.imagePath)
	if got != abs {
		t.Errorf("store.Get() = %q, want %q", got, abs)
	}
}

func TestOrchestrator_InvalidImageIsFatal(t *testing.T) {
	fx := newFixture(t)

	_, err := New(fx.opts).Apply(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, palette.ErrInvalidImage) {
		t.Fatalf("Apply() error = %v, want ErrInvalidImage", err)
	}
}

func TestOrchestrator_TargetFailureIsIsolated(t *testing.T) {
	fx := newFixture(t)

	// A destination whose parent "directory" is a regular file cannot be
	// created, regardless of privileges.
	blocker := filepath.Join(fx.destDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	broken := render.Target{
		Name:        "broken",
		Strategy:    render.StrategyCopy,
		Source:      "colors-waybar.css",
		Destination: filepath.Join(blocker, "sub", "out.css"),
	}
	fx.opts.Targets = append([]render.Target{broken}, fx.opts.Targets...)

	result, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if err != nil {
		t.Fatalf("Apply() error = %v, partial target failure must not be fatal", err)
	}

	if len(result.FailedTargets) != 1 || result.FailedTargets[0].Name != "broken" {
		t.Errorf("FailedTargets = %v, want [broken]", result.FailedTargets)
	}
	if len(result.Rendered) != 3 {
		t.Errorf("Rendered = %v, want the 3 healthy targets", result.Rendered)
	}
	if !strings.Contains(result.Summary(), "failed targets: broken") {
		t.Errorf("Summary() = %q, should report the failed target", result.Summary())
	}
}

func TestOrchestrator_BouncesProcessForRenderedTarget(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("no 'true' binary available")
	}

	fx := newFixture(t)
	fx.opts.Targets[0].Process = "statusbar-proc"
	fx.opts.Processes = []proc.ManagedProcess{
		{Name: "statusbar-proc", Command: "true"},
	}

	result, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(result.Bounced) != 1 || result.Bounced[0] != "statusbar-proc" {
		t.Errorf("Bounced = %v, want [statusbar-proc]", result.Bounced)
	}
}

func TestOrchestrator_UnconfiguredProcessIsIsolated(t *testing.T) {
	fx := newFixture(t)
	fx.opts.Targets[0].Process = "ghost"

	result, err := New(fx.opts).Apply(context.Background(), fx.imagePath)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(result.FailedProcesses) != 1 || result.FailedProcesses[0].Name != "ghost" {
		t.Errorf("FailedProcesses = %v, want [ghost]", result.FailedProcesses)
	}
}

func TestOrchestrator_ApplyWithLockFile(t *testing.T) {
	fx := newFixture(t)
	fx.opts.LockFile = filepath.Join(t.TempDir(), "apply.lock")

	if _, err := New(fx.opts).Apply(context.Background(), fx.imagePath); err != nil {
		t.Fatalf("Apply() with lock file error = %v", err)
	}

	// Lock released: a second apply must not deadlock.
	if _, err := New(fx.opts).Apply(context.Background(), fx.imagePath); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
}

func TestResult_Summary(t *testing.T) {
	r := &Result{
		Wallpaper: "/w.png",
		Rendered:  []string{"a", "b"},
		Bounced:   []string{"waybar"},
	}

	got := r.Summary()
	if !strings.Contains(got, "2 target(s) rendered") || !strings.Contains(got, "1 process(es) refreshed") {
		t.Errorf("Summary() = %q", got)
	}
	if strings.Contains(got, "failed") {
		t.Errorf("Summary() = %q, should not mention failures", got)
	}
}
