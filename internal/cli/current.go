package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ShyamendraHazra/home-config/internal/palette"
	"github.com/ShyamendraHazra/home-config/internal/proc"
	"github.com/ShyamendraHazra/home-config/internal/selection"
)

var currentPreview bool

// currentCmd represents the current command
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the currently selected wallpaper",
	Long: `Print the path of the currently selected wallpaper.

With --preview, the sixteen palette slots from the most recent extraction are
shown as colour swatches when stdout is a terminal.`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	currentCmd.Flags().BoolVar(&currentPreview, "preview", false, "show palette swatches from the cached artifact")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := selection.NewStore(cfg.SelectionFile).Get()
	if err != nil {
		return err
	}
	fmt.Println(path)

	if !currentPreview {
		return nil
	}

	runner := proc.NewExecRunner()
	extractor := palette.NewExtractor(cfg.Palette.Command, cfg.Palette.Args, cfg.Palette.CacheDir, runner, newLogger())
	artifact, err := extractor.Cached()
	if err != nil {
		return fmt.Errorf("no cached palette: %w", err)
	}

	printPalette(artifact.Palette)
	return nil
}

// printPalette renders the palette slots, with true-colour swatches when
// stdout is a terminal and plain hex values otherwise.
func printPalette(p *palette.Palette) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	for i, c := range p.Colors {
		if isTTY {
			fmt.Printf("  \x1b[48;2;%d;%d;%dm      \x1b[0m color%-2d %s  %s\n",
				c.R, c.G, c.B, i, c.Hex(), c.Decimal())
		} else {
			fmt.Printf("  color%-2d %s  %s\n", i, c.Hex(), c.Decimal())
		}
	}
}
