package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles"
	"github.com/vovakirdan/tui-marbles/internal/platform/tui"
	"github.com/vovakirdan/tui-marbles/internal/platform/ws"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and websocket servers",
	Long: `Start servers that let remote players play.

SSH: each connection gets its own session with the menu, level select
and scoreboard. The SSH user name is the player name for scores and
progress.

Websocket: browsers connect to /ws?player=<name>&level=<n> and drive a
session with JSON commands; the server streams a snapshot every tick.

Both servers share one scores database. Pass an empty address to
disable a server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.marbles/host_key

Examples:
  marbles serve                          # SSH on :23234, websocket on :8080
  marbles serve --ssh :2222 --ws ""      # SSH only, on port 2222
  marbles serve --host-key ./my_host_key # Use specific host key
  marbles serve --db ./scores.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", ":8080", "Websocket server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagWSAddr == "" {
		return errors.New("nothing to serve: both --ssh and --ws are empty")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be kept", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
			// One server failing takes the other down.
			stop()
		}()
	}

	if flagSSHAddr != "" {
		server, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			Store:       store,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
		}, logger.WithPrefix("marbles-ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		fmt.Printf("SSH: ssh localhost -p %s\n", portOf(flagSSHAddr))
		run("ssh", server.Serve)
	}

	if flagWSAddr != "" {
		handler := ws.NewHandler(ws.HandlerConfig{
			Logger: logger.WithPrefix("marbles-ws"),
			Options: marbles.Options{
				ConfigPath: flagConfig,
				LevelsPath: flagLevels,
				Preset:     config.ParsePreset(flagDifficulty),
				Seed:       flagSeed,
			},
			TickRate: flagFPS,
			Store:    store,
		})
		fmt.Printf("Websocket: ws://localhost:%s/ws\n", portOf(flagWSAddr))
		run("websocket", func(ctx context.Context) error {
			return ws.Serve(ctx, flagWSAddr, handler)
		})
	}

	fmt.Println("Press Ctrl+C to stop")
	wg.Wait()
	return errors.Join(errs...)
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
