package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/levels"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

var flagExportDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows every level of the campaign with its wave count and boss.

With --levels the catalog is read from a directory of YAML files instead
of the built-in campaign. With --export the catalog is written out as YAML
files, one per level, ready to edit.

Examples:
  skyraid levels
  skyraid levels --levels ./levels
  skyraid levels --export ./levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of YAML level files")
	levelsCmd.Flags().StringVar(&flagExportDir, "export", "", "Write the catalog as YAML files to this directory")
}

func runLevels(_ *cobra.Command, _ []string) {
	campaign := sim.DefaultCampaign()
	if flagLevelsDir != "" {
		c, err := levels.NewLoader(flagLevelsDir).Campaign()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		campaign = c
	}
	defs := campaign.Levels()

	if flagExportDir != "" {
		if err := levels.Export(flagExportDir, defs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d levels to %s\n", len(defs), flagExportDir)
		return
	}

	if len(defs) == 0 {
		fmt.Println("No levels available.")
		return
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range defs {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	// Print header
	fmt.Printf("  %-5s  %-*s  %5s  %s\n", "Level", maxNameLen, "Name", "Waves", "Boss")
	fmt.Printf("  %-5s  %-*s  %5s  %s\n", "-----", maxNameLen, "----", "-----", "----")

	for _, d := range defs {
		boss := "-"
		if d.Boss {
			boss = d.BossKind.String()
		}
		fmt.Printf("  %-5s  %-*s  %5d  %s\n", fmt.Sprintf("%d-%d", d.World, d.Level), maxNameLen, d.Name, len(d.Waves), boss)
	}

	fmt.Println()
	fmt.Println("Run 'skyraid play --world <w> --level <l>' to play a level.")
}
