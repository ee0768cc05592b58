package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/platform/tui"
)

var (
	flagPlayProgram string
	flagPlaySpeed   string
	flagMonochrome  bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Pick a level, write a program and watch it run",
	Long: `Start the interactive session: level picker, program editor and
animated playback. With a level index the editor opens directly; with
--program as well, playback starts immediately.

Controls (playback):
  P/Space  - Pause
  N/Right  - Step one action while paused
  +/-      - Faster/slower
  R        - Restart
  E        - Edit program
  B/Esc    - Back to levels
  Q/Ctrl+C - Quit

Examples:
  blockbot play
  blockbot play 3
  blockbot play 1 --program "forward forward forward"
  blockbot play --speed fast`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayProgram, "program", "", "Initial program text")
	playCmd.Flags().StringVar(&flagPlaySpeed, "speed", "", "Speed preset: slow, normal, fast, instant")
	playCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Use the monochrome theme")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	opts := tui.SessionOptions{Program: flagPlayProgram}
	if len(args) == 1 {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid level index %q\n", args[0])
			os.Exit(1)
		}
		opts.Level = index
		opts.Autoplay = flagPlayProgram != ""
	}

	if flagPlaySpeed != "" {
		preset := config.SpeedPreset(flagPlaySpeed)
		if _, ok := config.StepDelayForPreset(preset); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown speed %q\n", flagPlaySpeed)
			os.Exit(1)
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	if flagMonochrome {
		tui.SetTheme(tui.MonochromeTheme())
	}

	pack, lvls := loadLevels(cfg)
	if opts.Level != 0 {
		findLevel(lvls, opts.Level)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// The TUI owns the terminal; keep logs out of it unless asked for
	if flagLogLevel == "info" {
		logger.SetLevel(log.WarnLevel)
	}

	store := openStore(cfg, logger)
	settings, err := tui.NewSettings(cfg, pack, lvls, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	settings.Logger = logger

	runErr := tui.RunSession(settings, tui.RuntimeConfig(cfg, width, height), opts)

	// Close store before potential exit
	closeStore(store, logger)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
