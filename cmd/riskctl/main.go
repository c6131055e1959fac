// Command riskctl runs flood risk assessments and manages the historical
// flood-frequency database from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Flood risk assessment tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAssessCmd())
	root.AddCommand(newSeedHistoryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
