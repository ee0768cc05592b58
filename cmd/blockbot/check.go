package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
	"github.com/vovakirdan/blockbot/internal/registry"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate level files",
	Long: `Loads every level file of a directory (or of the active pack) and
reports the files that cannot be used: parse errors, grids of different
sizes, missing or duplicate starts and duplicate indexes.

The exit status is 1 when any problem is found.

Examples:
  blockbot check ./my-levels
  blockbot --pack builtin check`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	var loader *levels.Loader
	if len(args) == 1 {
		loader = levels.NewLoader(config.ExpandHome(args[0]))
	} else {
		var err error
		loader, err = registry.Open(resolvePack(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	lvls, problems, err := loader.Check()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, lvl := range lvls {
		fmt.Printf("  ok    %2d. %s (%s)\n", lvl.Index, lvl.Name, lvl.FilePath)
	}
	for _, p := range problems {
		fmt.Printf("  FAIL  %s\n", p.Error())
	}

	fmt.Println()
	fmt.Printf("%d levels, %d problems\n", len(lvls), len(problems))
	if len(problems) > 0 {
		os.Exit(1)
	}
}
