// blockbot is a block-programming puzzle: write a small program of robot
// actions and watch it walk the grid to the flag.
//
// Usage:
//
//	blockbot levels             - List levels of the active pack
//	blockbot show <level>       - Print a level as ASCII
//	blockbot run <level> <prog> - Run a program and print every step
//	blockbot play [level]       - Interactive picker, editor and playback
//	blockbot check [dir]        - Validate level files
//	blockbot scores [level]     - Show the run journal
//	blockbot serve              - Start SSH server for remote play
//	blockbot config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.blockbot/config.yaml)
//	--db <path>         - Run journal path (default: ~/.blockbot/runs.db)
//	--levels <dir>      - Load levels from a directory instead of the builtin pack
//	--pack <id>         - Registered level pack to use
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
	"github.com/vovakirdan/blockbot/internal/registry"
	"github.com/vovakirdan/blockbot/internal/storage"
)

// dirPack is the pack ID used for --levels and levels.dir.
const dirPack = "dir"

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLevels   string
	flagPack     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbot",
	Short: "Blockbot - program a robot with blocks in your terminal",
	Long: `Blockbot is a block-programming puzzle. Each level is a small grid with a
start and a flag; you write a program of robot actions (forward, turnLeft,
turnRight, jump, use and loops) and watch the robot execute it.

Available commands:
  levels   - Show all levels of the active pack
  show     - Print a level
  run      - Run a program and print every step
  play     - Interactive level picker, editor and playback
  check    - Validate level files
  scores   - View the run journal
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  blockbot levels
  blockbot run 1 "forward forward forward"
  blockbot play 2
  blockbot --levels ./my-levels check
  blockbot serve --address :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run journal (default: ~/.blockbot/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", "", "Level pack ID (see 'blockbot levels --packs')")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the command logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbot",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig loads the configuration or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolvePack registers the level directory, if any, and returns the pack ID
// to use. --pack wins over --levels, which wins over levels.dir.
func resolvePack(cfg config.Config) string {
	dir := flagLevels
	if dir == "" {
		dir = cfg.Levels.Dir
	}
	if dir != "" {
		if err := registry.RegisterDir(dirPack, config.ExpandHome(dir)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case flagPack != "":
		if !registry.Exists(flagPack) {
			fmt.Fprintf(os.Stderr, "Error: unknown level pack %q\n", flagPack)
			fmt.Fprintln(os.Stderr, "Run 'blockbot levels --packs' to see available packs.")
			os.Exit(1)
		}
		return flagPack
	case dir != "":
		return dirPack
	default:
		return registry.BuiltinID
	}
}

// loadLevels loads all levels of the active pack or exits.
func loadLevels(cfg config.Config) (string, []levels.Level) {
	pack := resolvePack(cfg)
	lvls, err := registry.Load(pack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	return pack, lvls
}

// findLevel returns the level with the given index or exits.
func findLevel(lvls []levels.Level, index int) levels.Level {
	for _, lvl := range lvls {
		if lvl.Index == index {
			return lvl
		}
	}
	fmt.Fprintf(os.Stderr, "Error: level %d not found\n", index)
	fmt.Fprintln(os.Stderr, "Run 'blockbot levels' to see available levels.")
	os.Exit(1)
	return levels.Level{}
}

// dbPath returns the run journal path: --db, then storage.db_path, then the
// user directory.
func dbPath(cfg config.Config) string {
	switch {
	case flagDBPath != "":
		return config.ExpandHome(flagDBPath)
	case cfg.Storage.DBPath != "":
		return config.ExpandHome(cfg.Storage.DBPath)
	default:
		return filepath.Join(config.UserDir(), "runs.db")
	}
}

// openStore opens the run journal. Failures are logged and nil is returned;
// commands keep working without a journal.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	path := dbPath(cfg)
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open run journal", "path", path, "error", err)
		return nil
	}
	return store
}

// closeStore closes the run journal, logging rather than failing on error.
func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close run journal", "error", err)
	}
}
