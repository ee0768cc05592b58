package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
	"github.com/vovakirdan/blockbot/internal/registry"
)

var flagListPacks bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels of the active pack",
	Long: `Shows the levels of the active level pack, sorted by index.
With --packs, lists the registered level packs instead.

Examples:
  blockbot levels
  blockbot levels --packs
  blockbot --levels ./my-levels levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagListPacks, "packs", false, "List registered level packs")
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagListPacks {
		resolvePack(cfg)
		printPacks()
		return
	}

	pack, lvls := loadLevels(cfg)
	if len(lvls) == 0 {
		fmt.Printf("No levels in pack %q.\n", pack)
		return
	}

	fmt.Printf("Levels in pack %q:\n", pack)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range lvls {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	// Print header
	fmt.Printf("  %-5s  %-*s  %-7s  %s\n", "Index", maxNameLen, "Name", "Size", "Blocks")
	fmt.Printf("  %-5s  %-*s  %-7s  %s\n", "-----", maxNameLen, "----", "----", "------")

	for _, lvl := range lvls {
		size := fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())
		fmt.Printf("  %-5d  %-*s  %-7s  %s\n", lvl.Index, maxNameLen, lvl.Name, size, blockList(lvl))
	}

	fmt.Println()
	fmt.Println("Run 'blockbot show <index>' to see a level, 'blockbot play' to solve them.")
}

func printPacks() {
	packs := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Println("Level packs:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}
}

// blockList lists the blocks a level offers.
func blockList(lvl levels.Level) string {
	if len(lvl.Actions) == 0 {
		return "all"
	}
	names := make([]string, len(lvl.Actions))
	for i, k := range lvl.Actions {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
