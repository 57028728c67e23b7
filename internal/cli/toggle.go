package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShyamendraHazra/home-config/internal/proc"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle <process>",
	Short: "Flip a managed process between running and stopped",
	Long: `Flip a managed process: stop it if it is running, start it if it is not.

The process is looked up in the configured managed processes; an
unconfigured name is launched as its own command. This is the raw flip
primitive - to guarantee a fresh instance, run it twice.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := args[0]
	mp, ok := cfg.Process(name)
	if !ok {
		mp = proc.ManagedProcess{Name: name, Command: name}
	}

	state, err := proc.NewController(newLogger()).Toggle(mp)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", mp.Name, state)
	return nil
}
