// Package cli provides the command-line interface for themectl.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ShyamendraHazra/home-config/internal/config"
	"github.com/ShyamendraHazra/home-config/internal/version"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "themectl",
		Short: "Wallpaper-driven desktop theme synchronizer",
		Long: `Themectl propagates a wallpaper-derived colour palette into the config
files of several desktop applications and refreshes their running processes.

Pick a wallpaper, and the status bar, lock screen, desktop settings store,
and terminal emulators all pick up the matching theme without a session
restart.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/themectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(toggleCmd)
}

// newLogger builds the application logger from the global verbosity flags.
func newLogger() hclog.Logger {
	level := hclog.Info
	output := io.Writer(os.Stderr)
	switch {
	case flagQuiet:
		level = hclog.Off
		output = io.Discard
	case flagVerbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "themectl",
		Level:  level,
		Output: output,
		Color:  hclog.AutoColor,
	})
}

// loadConfig reads the deployment configuration honouring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
