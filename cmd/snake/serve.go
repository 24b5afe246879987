package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/api"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and HTTP API",
	Long: `Serve the game over SSH and the leaderboard, accounts and spectator
stream over HTTP. Both share one database and one active player list, so
web spectators can watch SSH players.

SSH players are ranked under their SSH user name. HTTP clients sign up and
log in with bearer tokens.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                         # SSH on :23234, HTTP on :8080
  snake serve --http ""               # SSH only
  snake serve --ssh "" --http :9000   # HTTP only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH address (empty disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// openServeEnv is replaced in tests to observe the store.
var openServeEnv = openEnv

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fatalf("%v", err)
	}
}

// serve runs until a signal arrives or a listener fails. Errors are returned
// so the store is closed before the process exits.
func serve() error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	logger := newLogger()
	e, err := openServeEnv(logger)
	if err != nil {
		return err
	}
	defer e.store.Close()

	// Front ends pass usernames; there is no local login on a server.
	board := leaderboard.NewService(e.store, nil, e.cfg.Leaderboard.Size, logger)
	players := spectate.NewRegistry(e.cfg.Spectator.DemoPlayers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.Seed = flagSeed

		srv, err := tui.NewSSHServer(cfg, tui.Services{
			Config:      e.cfg,
			Leaderboard: board,
			Players:     players,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		if _, p, err := net.SplitHostPort(flagSSHAddr); err == nil {
			logger.Info("connect with: ssh localhost -p " + p)
		}
		g.Go(func() error { return srv.ListenAndServe(ctx) })
	}

	if flagHTTPAddr != "" {
		srv := api.NewServer(api.Deps{
			Config:      e.cfg,
			Accounts:    e.accounts,
			Leaderboard: board,
			Players:     players,
			Logger:      logger,
			Seed:        flagSeed,
		})
		g.Go(func() error { return srv.ListenAndServe(ctx, flagHTTPAddr) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
