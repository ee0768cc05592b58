package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level",
	Long: `Prints a level as ASCII together with its description and blocks.

Legend:
  >^<v  robot (facing)   .  path    #  ground
  F     flag             k  key     L  lock
  o     obstacle

Examples:
  blockbot show 3`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(_ *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level index %q\n", args[0])
		os.Exit(1)
	}

	cfg := loadConfig()
	_, lvls := loadLevels(cfg)
	lvl := findLevel(lvls, index)

	fmt.Printf("Level %d: %s\n", lvl.Index, lvl.Name)
	if lvl.Description != "" {
		fmt.Println(lvl.Description)
	}
	fmt.Println()
	fmt.Println(core.RenderASCII(lvl.Level, nil))
	fmt.Println()
	fmt.Printf("Blocks: %s\n", blockList(lvl))
	if lvl.FilePath != "" {
		fmt.Printf("File:   %s\n", lvl.FilePath)
	}
}
