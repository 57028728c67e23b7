package palette

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/hashicorp/go-hclog"

	"github.com/ShyamendraHazra/home-config/internal/proc"
)

// Sentinel errors for the extraction boundary.
var (
	// ErrInvalidImage indicates the input path does not reference a
	// readable, decodable image file.
	ErrInvalidImage = errors.New("invalid image")

	// ErrExtractionFailed indicates the external palette tool exited
	// non-zero or produced no usable artifact. Extraction is never retried:
	// the tool mutates shared cache directories used by other consumers.
	ErrExtractionFailed = errors.New("palette extraction failed")
)

// ColorsFileName is the plain-text palette index inside the artifact bundle:
// sixteen hex colours, one per line, in slot order.
const ColorsFileName = "colors"

// Artifact is the output of one extraction: the parsed palette plus the
// directory of pre-rendered per-consumer colour files the tool generated.
type Artifact struct {
	// Dir is the bundle directory (one generated file per consumer syntax).
	Dir string

	// Palette holds the sixteen parsed slot colours.
	Palette *Palette
}

// File returns the path of a named file inside the artifact bundle.
func (a *Artifact) File(name string) string {
	return filepath.Join(a.Dir, name)
}

// Extractor invokes the external palette tool and parses its artifact.
type Extractor struct {
	command  string
	args     []string
	cacheDir string
	runner   proc.Runner
	logger   hclog.Logger
}

// NewExtractor creates an Extractor that runs the given tool command with the
// given base args (quiet, non-interactive flags belong in args) and reads the
// artifact bundle from cacheDir.
func NewExtractor(command string, args []string, cacheDir string, runner proc.Runner, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if runner == nil {
		runner = proc.NewExecRunner()
	}
	return &Extractor{
		command:  command,
		args:     args,
		cacheDir: cacheDir,
		runner:   runner,
		logger:   logger.Named("palette"),
	}
}

// Extract runs the external tool on the image at path and returns the
// resulting artifact. The image is validated by decoding its header before
// the tool is invoked, so a bad path fails with ErrInvalidImage rather than
// an opaque tool error.
func (e *Extractor) Extract(ctx context.Context, imagePath string) (*Artifact, error) {
	if err := ValidateImage(imagePath); err != nil {
		return nil, err
	}

	args := append(append([]string{}, e.args...), imagePath)
	e.logger.Debug("running palette tool", "command", e.command, "args", args)

	stdout, stderr, err := e.runner.Run(ctx, e.command, args, nil)
	if err != nil {
		e.logger.Error("palette tool failed", "error", err, "stderr", strings.TrimSpace(string(stderr)))
		return nil, fmt.Errorf("%w: %s: %v", ErrExtractionFailed, e.command, err)
	}
	if len(stdout) > 0 {
		e.logger.Debug("palette tool output", "stdout", strings.TrimSpace(string(stdout)))
	}

	artifact, err := e.loadArtifact()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracted palette",
		"background", artifact.Palette.Background().Hex(),
		"foreground", artifact.Palette.Foreground().Hex(),
		"bundle", artifact.Dir)

	return artifact, nil
}

// Cached returns the artifact left behind by the most recent extraction
// without invoking the tool. Used for preview and dry-run paths.
func (e *Extractor) Cached() (*Artifact, error) {
	return e.loadArtifact()
}

// loadArtifact reads the bundle the tool left in the cache directory.
func (e *Extractor) loadArtifact() (*Artifact, error) {
	info, err := os.Stat(e.cacheDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: no artifact bundle at %s", ErrExtractionFailed, e.cacheDir)
	}

	pal, err := ParseColorsFile(filepath.Join(e.cacheDir, ColorsFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return &Artifact{Dir: e.cacheDir, Palette: pal}, nil
}

// ParseColorsFile parses the tool's colors file: sixteen hex colours, one per
// line, in slot order. Blank lines are ignored.
func ParseColorsFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open colors file: %w", err)
	}
	defer f.Close()

	colors := make([]RGB, 0, Size)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, err := ParseHex(line)
		if err != nil {
			return nil, fmt.Errorf("colors file %s: %w", path, err)
		}
		colors = append(colors, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read colors file: %w", err)
	}

	return New(colors)
}

// ValidateImage checks that path references an existing, readable, decodable
// image file. Supported formats: JPEG, PNG, GIF, BMP, TIFF, WebP.
func ValidateImage(path string) error {
	if path == "" {
		return fmt.Errorf("%w: image path cannot be empty", ErrInvalidImage)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file not found: %s", ErrInvalidImage, path)
		}
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: path is a directory: %s", ErrInvalidImage, path)
	}

	f, err := os.Open(path) // #nosec G304 - user-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidImage, path, err)
	}

	return nil
}
