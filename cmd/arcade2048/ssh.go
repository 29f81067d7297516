package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/platform/tui"
)

var (
	flagSSHAddr    string
	flagHostKey    string
	flagSSHDiff    string
	flagSSHIdleMin int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH terminal server",
	Long: `Start an SSH server that lets users connect and play 2048.

Each SSH connection gets its own game; the SSH user name is recorded on
the leaderboard. All users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade2048/host_key

Examples:
  arcade2048 ssh                           # Listen on :23234
  arcade2048 ssh --address :2222
  arcade2048 ssh --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "address", "", "SSH listen address (overrides config)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().StringVar(&flagSSHDiff, "difficulty", "medium", "Default AI difficulty: easy, medium, hard")
	sshCmd.Flags().IntVar(&flagSSHIdleMin, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
}

func runSSH(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := tui.SSHServerConfig{
		Address:       a.cfg.SSH.Address,
		HostKeyPath:   a.cfg.SSH.HostKeyPath,
		IdleTimeout:   a.cfg.SSH.IdleTimeout,
		GridSize:      a.cfg.Game.GridSize,
		Difficulty:    ai.ParseDifficulty(flagSSHDiff),
		AutoplayDelay: a.cfg.AI.AutoplayDelay,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagSSHIdleMin > 0 {
		cfg.IdleTimeout = time.Duration(flagSSHIdleMin) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg, a.svc, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("connect with", "cmd", "ssh localhost -p "+portOf(cfg.Address))
	return server.ListenAndServe(ctx)
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
