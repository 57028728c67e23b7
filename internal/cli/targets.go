package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShyamendraHazra/home-config/internal/proc"
)

// targetsCmd represents the targets command
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured theme targets and managed processes",
	Args:  cobra.NoArgs,
	RunE:  runTargets,
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Targets:")
	for _, t := range cfg.Targets {
		fmt.Printf("  %-18s %-22s -> %s\n", t.Name, "("+string(t.Strategy)+")", t.Destination)
	}

	if len(cfg.Processes) == 0 {
		return nil
	}

	controller := proc.NewController(newLogger())
	fmt.Println("\nManaged processes:")
	for _, mp := range cfg.Processes {
		state, err := controller.CurrentState(mp.Name)
		if err != nil {
			fmt.Printf("  %-18s state unknown: %v\n", mp.Name, err)
			continue
		}
		fmt.Printf("  %-18s %s\n", mp.Name, state)
	}

	return nil
}
