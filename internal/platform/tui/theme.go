package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbot/internal/core"
)

// Theme contains the visual styles of the picker, editor and history screens,
// and the palette RenderScreen uses for the board.
type Theme struct {
	// Board maps screen cell roles to styles; missing roles render plain.
	Board map[core.Color]lipgloss.Style

	// Title bar
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Level picker
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemDone    lipgloss.Style
	MenuDescription lipgloss.Style

	// Program editor
	Prompt      lipgloss.Style
	ProgramText lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Hint        lipgloss.Style
	Panel       lipgloss.Style

	// Help and misc
	Help  lipgloss.Style
	Empty lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Board: map[core.Color]lipgloss.Style{
			core.ColorText:     fg("252"),
			core.ColorMuted:    fg("242"),
			core.ColorHUD:      fg("51"),
			core.ColorPath:     fg("250"),
			core.ColorGround:   fg("238"),
			core.ColorStart:    fg("37"),
			core.ColorFinish:   fg("46").Bold(true),
			core.ColorKey:      fg("226").Bold(true),
			core.ColorLock:     fg("170").Bold(true),
			core.ColorObstacle: fg("208"),
			core.ColorPlayer:   fg("231").Bold(true),
			core.ColorJump:     fg("213").Bold(true),
			core.ColorSuccess:  fg("46"),
			core.ColorFailure:  fg("196"),
			core.ColorTitle:    fg("226").Bold(true),
		},

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),

		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		ProgramText: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Hint:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.MenuItemDone = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Prompt = lipgloss.NewStyle().Bold(true)
	theme.Error = lipgloss.NewStyle().Bold(true)

	// Glyphs already tell squares apart; keep emphasis for the robot and outcome.
	bold := lipgloss.NewStyle().Bold(true)
	theme.Board = map[core.Color]lipgloss.Style{
		core.ColorMuted:   fg("244"),
		core.ColorGround:  fg("240"),
		core.ColorPlayer:  bold,
		core.ColorJump:    bold.Underline(true),
		core.ColorSuccess: bold,
		core.ColorFailure: bold.Reverse(true),
		core.ColorTitle:   bold,
	}
	return theme
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
