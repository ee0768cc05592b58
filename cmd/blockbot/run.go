package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/games/blocks"
	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels/formats"
	"github.com/vovakirdan/blockbot/internal/storage"
)

var (
	flagProgramFile string
	flagSpeed       string
	flagQuiet       bool
	flagNoSave      bool
)

var runCmd = &cobra.Command{
	Use:   "run <level> [program]",
	Short: "Run a program and print every step",
	Long: `Runs a program on a level and prints the board after every action.

The program is given as text or read from a file with --file. Files ending in
.yaml or .yml hold a list of blocks; anything else uses the text syntax:

  forward turnLeft jump use
  loop 3 [ forward turnRight ]

The run is paced by playback.step_delay unless --speed says otherwise.
Finished runs are recorded in the run journal. The exit status is 1 when the
robot does not reach the flag.

Examples:
  blockbot run 1 "forward forward forward"
  blockbot run 4 --file solution.yaml --speed instant
  blockbot run 2 "loop 2 [forward turnRight]" --quiet`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagProgramFile, "file", "f", "", "Read the program from a file")
	runCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, instant")
	runCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the result")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the journal")
}

func runRun(_ *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level index %q\n", args[0])
		os.Exit(1)
	}

	cfg := loadConfig()
	logger := newLogger()
	if flagSpeed != "" {
		preset := config.SpeedPreset(flagSpeed)
		if _, ok := config.StepDelayForPreset(preset); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown speed %q\n", flagSpeed)
			os.Exit(1)
		}
		config.ApplySpeedPreset(&cfg, preset)
	}

	pack, lvls := loadLevels(cfg)
	lvl := findLevel(lvls, index)

	program, err := readProgram(args, index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rules := blocks.Rules{
		MaxLoopDepth:   cfg.Engine.MaxLoopDepth,
		EnforceAllowed: cfg.Engine.EnforceAllowedActions,
	}
	if err := rules.Check(program, lvl.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := cfg.RunOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.Logger = logger
	if !flagQuiet {
		opts.Observer = func(s *core.State) {
			fmt.Println(core.RenderASCII(lvl.Level, s))
			fmt.Println(core.RenderStatus(s))
			if line := s.LastLog(); line != "" {
				fmt.Println(line)
			}
			fmt.Println()
		}
	}

	// Ctrl+C stops a paced run between actions
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := core.RunPaced(ctx, lvl.Level, program, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Run interrupted")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := core.NewResult(lvl.Level, program, final)
	printResult(result)

	if !flagNoSave {
		if store := openStore(cfg, logger); store != nil {
			id, saveErr := store.SaveRun(storage.NewRun(pack, storage.LocalPlayer, result))
			closeStore(store, logger)
			if saveErr != nil {
				logger.Warn("could not save run", "error", saveErr)
			} else {
				logger.Debug("run saved", "id", id)
			}
		}
	}

	if !result.Complete {
		os.Exit(1)
	}
}

// readProgram parses the program from the second argument or --file.
func readProgram(args []string, level int) (core.Program, error) {
	switch {
	case flagProgramFile != "" && len(args) > 1:
		return nil, errors.New("give the program as an argument or with --file, not both")

	case flagProgramFile != "":
		data, err := os.ReadFile(flagProgramFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read program: %w", err)
		}
		file, err := formats.ParseProgramFile(data, filepath.Ext(flagProgramFile))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flagProgramFile, err)
		}
		if file.Level != 0 && file.Level != level {
			return nil, fmt.Errorf("%s was written for level %d", flagProgramFile, file.Level)
		}
		return file.Program, nil

	case len(args) > 1:
		return core.ParseProgram(args[1])

	default:
		return nil, errors.New("no program given")
	}
}

func printResult(r core.Result) {
	if r.Complete {
		fmt.Println("Level complete!")
	} else {
		fmt.Println("Level failed")
	}
	fmt.Printf("  Program: %s\n", r.Program)
	fmt.Printf("  Blocks:  %d\n", r.Blocks)
	fmt.Printf("  Actions: %d\n", r.Actions)
	fmt.Printf("  Time:    %s\n", r.Elapsed.Round(time.Millisecond))
	if r.Reason != "" {
		fmt.Printf("  Reason:  %s\n", strings.TrimSpace(r.Reason))
	}
}
