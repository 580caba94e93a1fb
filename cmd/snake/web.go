package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to browsers",
	Long: `Start an HTTP server with a canvas page. Every browser tab plays its
own game over a websocket; the server runs the game loop and streams frames.

Pass ?name=<player> in the page URL to record scores under that name.

Examples:
  snake web
  snake web --http :9000 --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg, policy, closePolicy, err := loadGame()
	if err != nil {
		fail("%v", err)
	}
	defer closePolicy()

	logger, closeLog, err := newLogger("snake-web", os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	server := web.NewServer(web.Config{
		Address: flagHTTPAddr,
		Game:    cfg,
		Policy:  policy,
		Seed:    flagSeed,
		Store:   store,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("press Ctrl+C to stop", "open", "http://localhost:"+portOf(flagHTTPAddr))
	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}

// portOf returns the port of a host:port address for the hint lines.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
