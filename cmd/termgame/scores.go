package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <demo>",
	Short: "Show high scores and bench runs for a demo",
	Long: `Display the top 10 high scores and the most recent bench runs for the
specified demo.

Examples:
  termgame scores shooter
  termgame scores balls
  termgame scores shooter --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var flagClearScores bool

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "delete every recorded score of the demo")
}

func runScores(cmd *cobra.Command, args []string) {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'termgame list' to see available demos.")
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}
	title := demo.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(demoID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(demoID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'termgame play %s' to set the first high score!\n", demoID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}
		fmt.Println()
		if highScore, err := store.HighScore(demoID); err == nil {
			fmt.Printf("Best: %d\n", highScore)
		}
	}

	runs, err := store.RecentBenchRuns(demoID, 5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving bench runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent bench runs:")
	fmt.Printf("  %-8s  %-10s  %-8s  %-8s  %s\n", "Ticks", "Avg FPS", "Sprites", "Writes", "Date")
	fmt.Printf("  %-8s  %-10s  %-8s  %-8s  %s\n", "-----", "-------", "-------", "------", "----")
	for _, run := range runs {
		fmt.Printf("  %-8d  %-10.1f  %-8d  %-8d  %s\n",
			run.Ticks, run.AverageFPS, run.Sprites, run.Writes, run.CreatedAt.Format("2006-01-02 15:04"))
	}
}
