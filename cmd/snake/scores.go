package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

var (
	flagScoresMode string
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores, optionally for one mode.

Examples:
  snake scores
  snake scores --mode passthrough
  snake scores --mode walls --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode statistics",
	Args:  cobra.NoArgs,
	Run:   runStats,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show one mode: walls or passthrough")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores instead of showing them")
}

func runScores(_ *cobra.Command, _ []string) {
	var mode snake.Mode
	if flagScoresMode != "" && flagScoresMode != "all" {
		m, err := snake.ParseMode(flagScoresMode)
		if err != nil {
			fatalf("%v", err)
		}
		mode = m
	}

	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	if flagClear {
		if err := e.store.ClearScores(string(mode)); err != nil {
			fatalf("%v", err)
		}
		e.logger.Info("scores cleared", "mode", modeLabel(mode))
		return
	}

	entries, err := e.board.Top(mode)
	if err != nil {
		fatalf("retrieving scores: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", modeLabel(mode))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-11s  %s\n", "Rank", "Player", "Score", "Mode", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-11s  %s\n", "----", "------", "-----", "----", "----")
	for _, en := range entries {
		fmt.Printf("  %-4d  %-16s  %-8d  %-11s  %s\n", en.Rank, en.Username, en.Score, en.Mode, en.Date)
	}

	fmt.Println()
	if high, err := e.store.HighScore(string(mode)); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}

func runStats(_ *cobra.Command, _ []string) {
	e, err := openEnv(newLogger())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer e.store.Close()

	stats, err := e.store.GetModeStats()
	if err != nil {
		fatalf("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	slices.Sort(modes)

	fmt.Printf("  %-11s  %-6s  %-6s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-11s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, m := range modes {
		s := stats[m]
		fmt.Printf("  %-11s  %-6d  %-6d  %-8.1f  %s\n",
			s.Mode, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func modeLabel(m snake.Mode) string {
	if m == "" {
		return "all modes"
	}
	return m.Title()
}
