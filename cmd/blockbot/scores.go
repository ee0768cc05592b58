package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the run journal",
	Long: `Without a level, shows per-level statistics for the active pack.
With a level, shows the best runs: completed first, then fewest blocks,
then fewest actions.

Examples:
  blockbot scores
  blockbot scores 3
  blockbot scores 3 --recent
  blockbot scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the active pack")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	pack, lvls := loadLevels(cfg)

	store := openStore(cfg, logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: run journal unavailable")
		os.Exit(1)
	}
	defer closeStore(store, logger)

	if flagScoresClear {
		if err := store.ClearRuns(pack); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs of pack %q.\n", pack)
		return
	}

	if len(args) == 0 {
		stats, err := store.AllLevelStats(pack)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Run journal - pack %q\n", pack)
		fmt.Println()
		fmt.Printf("  %-5s  %-24s  %-8s  %-6s  %-7s  %s\n", "Level", "Name", "Attempts", "Solved", "Best", "Last played")
		fmt.Printf("  %-5s  %-24s  %-8s  %-6s  %-7s  %s\n", "-----", "----", "--------", "------", "----", "-----------")
		for _, lvl := range lvls {
			st, ok := stats[lvl.Index]
			if !ok {
				fmt.Printf("  %-5d  %-24s  %-8d  %-6d  %-7s  %s\n", lvl.Index, lvl.Name, 0, 0, "-", "never")
				continue
			}
			fmt.Printf("  %-5d  %-24s  %-8d  %-6d  %-7s  %s\n",
				lvl.Index, lvl.Name, st.Attempts, st.Completions, bestLabel(st), st.LastPlayed.Format("2006-01-02 15:04"))
		}
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level index %q\n", args[0])
		os.Exit(1)
	}
	lvl := findLevel(lvls, index)

	var runs []storage.Run
	if flagScoresRecent {
		runs, err = store.LevelRuns(pack, index, flagScoresLimit)
	} else {
		runs, err = store.Leaderboard(pack, index, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Runs - Level %d: %s\n", lvl.Index, lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockbot play %d' to record the first one!\n", index)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %-7s  %-6s  %-16s  %s\n", "Rank", "Player", "Blocks", "Actions", "Result", "Date", "Program")
	fmt.Printf("  %-4s  %-10s  %-6s  %-7s  %-6s  %-16s  %s\n", "----", "------", "------", "-------", "------", "----", "-------")

	for i, run := range runs {
		result := "fail"
		if run.Completed {
			result = "ok"
		}
		fmt.Printf("  %-4d  %-10s  %-6d  %-7d  %-6s  %-16s  %s\n",
			i+1, run.Player, run.Blocks, run.Actions, result, run.CreatedAt.Format("2006-01-02 15:04"), run.Program)
	}

	stats, err := store.LevelStats(pack, index)
	if err == nil && stats.Attempts > 0 {
		fmt.Println()
		fmt.Printf("Attempts: %d, solved: %d, best: %s", stats.Attempts, stats.Completions, bestLabel(stats))
		if stats.Fastest > 0 {
			fmt.Printf(", fastest: %s", stats.Fastest.Round(time.Millisecond))
		}
		fmt.Println()
	}
}

func bestLabel(st *storage.LevelStats) string {
	if st.Completions == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", st.BestBlocks, st.BestActions)
}
