package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/sets"
)

var (
	flagRecent      bool
	flagLimit       int
	flagMinAttempts int
	flagReset       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode, or the most
recent games with --recent.

Examples:
  setfall scores classic
  setfall scores waves
  setfall scores --recent`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-set accuracy",
	Long: `Display the sets you name least reliably, hardest first. The same
history tints falling icons: green at 70% accuracy or better, red below 50%.

Examples:
  setfall stats
  setfall stats --limit 20 --min-attempts 3
  setfall stats --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show recent games instead of high scores")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	statsCmd.Flags().IntVar(&flagMinAttempts, "min-attempts", 1, "Only show sets seen at least this often")
	statsCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget all per-set results")
}

func runScores(_ *cobra.Command, args []string) error {
	if flagRecent {
		return runRecent()
	}
	if len(args) != 1 {
		return fmt.Errorf("scores needs a mode; run 'setfall modes' to see available modes")
	}

	mode := args[0]
	info, ok := registry.Lookup(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q; run 'setfall modes' to see available modes", mode)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'setfall play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetModeStats(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func runRecent() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-12s  %-8s  %-7s  %s\n", "Started", "Mode", "Player", "Score", "Named", "Result")
	for _, s := range sessions {
		result := "ended"
		switch {
		case s.EndedAt.IsZero():
			result = "-"
		case s.Won:
			result = "won"
		}
		fmt.Printf("  %-16s  %-8s  %-12s  %-8d  %-7d  %s\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.Mode, s.Player, s.Score, s.Correct, result)
	}
	return nil
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearSetResults(); err != nil {
			return err
		}
		fmt.Println("Per-set results cleared.")
		return nil
	}

	results, err := store.HardestSets(flagLimit, flagMinAttempts)
	if err != nil {
		return fmt.Errorf("cannot retrieve set results: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No set results recorded yet.")
		return nil
	}

	// Names come from the current set list; retired codes show without one
	names := map[string]sets.Set{}
	if list, err := sets.Load(flagSets); err == nil {
		names = sets.ByCode(list)
	}

	fmt.Printf("  %-6s  %-32s  %6s  %6s  %8s\n", "Code", "Name", "Named", "Missed", "Accuracy")
	for _, r := range results {
		fmt.Printf("  %-6s  %-32s  %6d  %6d  %7.0f%%\n",
			r.Code, names[r.Code].Name, r.Success, r.Failure, 100*float64(r.Success)/float64(r.Attempts()))
	}
	return nil
}
