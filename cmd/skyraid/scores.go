package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run scores and level results",
	Long: `Display the top 10 run scores and the best result of every level played.

Examples:
  skyraid scores
  skyraid scores --db ./scores.db
  skyraid scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all run scores")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(skyraid.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run scores cleared.")
		return
	}

	scores, err := store.TopScores(skyraid.GameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Sky Raid")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyraid play' to set the first high score!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		fmt.Println()
		best, err := store.HighScore(skyraid.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving high score: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Best: %d", best)
		if stats, err := store.GetGameStats(skyraid.GameID); err == nil {
			fmt.Printf("  Runs: %d  Average: %.0f", stats.GamesCount, stats.AvgScore)
		}
		fmt.Println()
	}

	results, err := store.BestLevelResults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level results: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Level Results")
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-8s  %-5s  %-6s  %s\n", "Level", "Stars", "Score", "Kills", "Deaths", "Boss")
	fmt.Printf("  %-5s  %-5s  %-8s  %-5s  %-6s  %s\n", "-----", "-----", "-----", "-----", "------", "----")
	for _, r := range results {
		boss := ""
		if r.BossDefeated {
			boss = "defeated"
		}
		fmt.Printf("  %-5s  %-5s  %-8d  %-5d  %-6d  %s\n",
			fmt.Sprintf("%d-%d", r.World, r.Level), strings.Repeat("*", r.Stars), r.Score, r.Kills, r.Deaths, boss)
	}

	if credits, err := store.TotalCredits(); err == nil {
		fmt.Println()
		fmt.Printf("Credits earned: %d\n", credits)
	}
}
