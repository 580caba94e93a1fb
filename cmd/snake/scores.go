package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded games.

In a terminal the list opens as a scrollable table; when piped, or with
--plain, it prints a static table instead.

Examples:
  snake scores
  snake scores --limit 50
  snake scores --plain > scores.txt
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a static table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	records, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	fd := int(os.Stdout.Fd())
	if flagScoresPlain || !term.IsTerminal(fd) {
		fmt.Println(tui.FormatScores(records, stats))
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}
	if err := tui.RunScoreboard(records, stats, width, height); err != nil {
		fail("%v", err)
	}
}
