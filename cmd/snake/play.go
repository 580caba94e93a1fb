package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/world"
)

var (
	flagNoScores bool
	flagDebug    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/HJKL - Turn
  P                - Pause
  R                - Restart (after game over)
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play --difficulty easy
  snake play --config ./snake.toml
  snake play --seed 42 --log-file snake.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoScores, "no-scores", false, "Do not record scores")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show world internals in the status line")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, policy, closePolicy, err := loadGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := presetHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
	defer closePolicy()

	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	var store *storage.Store
	if !flagNoScores {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Play without scores
			logger.Warn("could not open scores database", "error", err)
		} else {
			defer store.Close()
		}
	}

	final, err := tui.Run(tui.Options{
		Config: cfg,
		Policy: policy,
		Seed:   flagSeed,
		Store:  store,
		Logger: logger,
		Width:  width,
		Height: height,
		Debug:  flagDebug,
	})
	if err != nil {
		fail("%v", err)
	}

	if final.State == world.StateOver {
		fmt.Printf("You %s at level %d with score %d.\n", final.Outcome, final.Level, final.Score)
	}
}
