package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShyamendraHazra/home-config/internal/palette"
	"github.com/ShyamendraHazra/home-config/internal/proc"
	"github.com/ShyamendraHazra/home-config/internal/render"
	"github.com/ShyamendraHazra/home-config/internal/selection"
	"github.com/ShyamendraHazra/home-config/internal/theme"
	"github.com/ShyamendraHazra/home-config/internal/wallpaper"
)

var setDryRun bool

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <image>",
	Short: "Set the wallpaper and propagate its palette",
	Long: `Set the current wallpaper, derive a colour palette from it, render every
configured theme target, and refresh the managed consumer processes.

The selection is persisted first and the wallpaper transition is best-effort:
a failed transition does not block theme propagation. Individual target or
process failures are reported but do not fail the command; only the fatal
steps (persisting the selection and extracting the palette) produce a
non-zero exit.

Examples:
  # Apply a new wallpaper
  themectl set ~/Pictures/walls/forest.jpg

  # Preview what would be rendered, using the most recent cached palette
  themectl set ~/Pictures/walls/forest.jpg --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "preview targets without writing files (uses the cached palette)")
}

func runSet(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner := proc.NewExecRunner()
	extractor := palette.NewExtractor(cfg.Palette.Command, cfg.Palette.Args, cfg.Palette.CacheDir, runner, logger)

	if setDryRun {
		return runSetDryRun(args[0], cfg.Targets, extractor)
	}

	orchestrator := theme.New(theme.Options{
		Store:      selection.NewStore(cfg.SelectionFile),
		Wallpaper:  wallpaper.NewSetter(cfg.Wallpaper.Command, cfg.Wallpaper.Args, runner, logger),
		Extractor:  extractor,
		Renderer:   render.New(logger),
		Controller: proc.NewController(logger),
		Targets:    cfg.Targets,
		Processes:  cfg.Processes,
		LockFile:   cfg.LockFile,
		Logger:     logger,
	})

	result, err := orchestrator.Apply(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Println(result.Summary())
		for _, f := range result.FailedTargets {
			fmt.Fprintf(os.Stderr, "  target %s: %v\n", f.Name, f.Err)
		}
		for _, f := range result.FailedProcesses {
			fmt.Fprintf(os.Stderr, "  process %s: %v\n", f.Name, f.Err)
		}
	}

	return nil
}

// runSetDryRun reports what an apply would do without touching any
// destination. Extraction is skipped because the external tool mutates its
// shared cache; the most recent cached artifact stands in for the palette.
func runSetDryRun(imagePath string, targets []render.Target, extractor *palette.Extractor) error {
	if err := palette.ValidateImage(imagePath); err != nil {
		return err
	}

	artifact, err := extractor.Cached()
	if err != nil {
		return fmt.Errorf("dry-run needs a cached palette from a previous apply: %w", err)
	}

	fmt.Printf("Would apply %s (palette preview from %s)\n", imagePath, artifact.Dir)
	for _, t := range targets {
		fmt.Printf("  would render %-18s %-22s -> %s\n", t.Name, "("+string(t.Strategy)+")", t.Destination)
		if t.Process != "" {
			fmt.Printf("  would refresh process %s\n", t.Process)
		}
	}

	return nil
}
