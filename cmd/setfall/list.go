package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/sets"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Resumable", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "---------", "-----------")
	for _, m := range modes {
		resumable := "no"
		if m.Resumable {
			resumable = "yes"
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, m.ID, resumable, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'setfall play <id>' to play a mode.")
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the loaded sets",
	Long: `Shows the set list a game would use: the built-in list, or the file
given with --sets. The list is validated the same way play validates it.

Examples:
  setfall sets
  setfall sets --sets ./my-sets.yaml`,
	RunE: runSets,
}

func runSets(_ *cobra.Command, _ []string) error {
	list, err := sets.Load(flagSets)
	if err != nil {
		return err
	}

	maxName := 4 // "Name" header
	for _, s := range list {
		maxName = max(maxName, len([]rune(s.Name)))
	}

	fmt.Printf("  %-6s  %-*s  %s\n", "Code", maxName, "Name", "Released")
	fmt.Printf("  %-6s  %-*s  %s\n", "----", maxName, "----", "--------")
	for _, s := range list {
		fmt.Printf("  %-6s  %-*s  %s\n", s.Code, maxName, s.Name, s.Released)
	}
	fmt.Println()
	fmt.Printf("%d sets\n", len(list))
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in game configuration as YAML. Save it to
~/.setfall/configs/setfall.yaml or pass it with --config to customize.
Files only need the keys they change.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(string(config.DefaultYAML()))
	},
}
