package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blockbot SSH server",
	Long: `Start an SSH server that allows users to connect and solve levels.

Each SSH connection gets its own session with the level picker.
Runs are journaled per server under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise server.host_key, or an auto-generated key at ~/.blockbot/host_key

Examples:
  blockbot serve                           # Listen on :23234 with auto-generated key
  blockbot serve --address :2222           # Listen on port 2222
  blockbot serve --host-key ./my_host_key  # Use specific host key
  blockbot serve --db ./runs.db            # Use specific journal

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "address", "", "SSH server address (default: server.address)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default: server.idle_timeout)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger()
	pack, lvls := loadLevels(cfg)

	settings, err := tui.NewSettings(cfg, pack, lvls, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.DBPath = dbPath(cfg)
	serverCfg.Settings = settings
	serverCfg.Runtime = tui.RuntimeConfig(cfg, 0, 0)
	serverCfg.Logger = logger.WithPrefix("blockbot-ssh")
	if cfg.Server.Address != "" {
		serverCfg.Address = cfg.Server.Address
	}
	if cfg.Server.HostKey != "" {
		serverCfg.HostKeyPath = config.ExpandHome(cfg.Server.HostKey)
	}
	if cfg.Server.IdleTimeout > 0 {
		serverCfg.IdleTimeout = cfg.Server.IdleTimeout
	}
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting blockbot SSH server on %s (%d levels from %q)\n", server.Addr(), len(lvls), pack)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
