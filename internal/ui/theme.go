package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Julianoze/letreco/internal/game"
)

// Theme represents a color theme for the board
type Theme struct {
	Name string

	// Tile colors
	Right     lipgloss.AdaptiveColor
	Displaced lipgloss.AdaptiveColor
	Wrong     lipgloss.AdaptiveColor
	Rejected  lipgloss.AdaptiveColor

	// Colorblind replacements for Right and Displaced
	RightAlt     lipgloss.AdaptiveColor
	DisplacedAlt lipgloss.AdaptiveColor

	// UI colors
	Primary    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	OnTile     lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Key        lipgloss.AdaptiveColor
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:         "default",
		Right:        adaptive([2]string{"#15803D", "#22C55E"}),
		Displaced:    adaptive([2]string{"#A16207", "#EAB308"}),
		Wrong:        adaptive([2]string{"#6B7280", "#374151"}),
		Rejected:     adaptive([2]string{"#DC2626", "#EF4444"}),
		RightAlt:     adaptive([2]string{"#C2410C", "#F97316"}),
		DisplacedAlt: adaptive([2]string{"#1D4ED8", "#3B82F6"}),
		Primary:      adaptive([2]string{"#1E40AF", "#3B82F6"}),
		Border:       adaptive([2]string{"#D1D5DB", "#4B5563"}),
		Foreground:   adaptive([2]string{"#111827", "#F9FAFB"}),
		OnTile:       adaptive([2]string{"#FFFFFF", "#FFFFFF"}),
		Muted:        adaptive([2]string{"#6B7280", "#9CA3AF"}),
		Key:          adaptive([2]string{"#E5E7EB", "#1F2937"}),
	}

	HighContrastTheme = Theme{
		Name:         "high-contrast",
		Right:        adaptive([2]string{"#006600", "#00FF00"}),
		Displaced:    adaptive([2]string{"#CC6600", "#FFAA00"}),
		Wrong:        adaptive([2]string{"#000000", "#444444"}),
		Rejected:     adaptive([2]string{"#CC0000", "#FF4444"}),
		RightAlt:     adaptive([2]string{"#CC3300", "#FF6600"}),
		DisplacedAlt: adaptive([2]string{"#000080", "#8080FF"}),
		Primary:      adaptive([2]string{"#000000", "#FFFFFF"}),
		Border:       adaptive([2]string{"#000000", "#FFFFFF"}),
		Foreground:   adaptive([2]string{"#000000", "#FFFFFF"}),
		OnTile:       adaptive([2]string{"#FFFFFF", "#000000"}),
		Muted:        adaptive([2]string{"#666666", "#BBBBBB"}),
		Key:          adaptive([2]string{"#CCCCCC", "#333333"}),
	}
)

// ThemeByName looks a theme up, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case HighContrastTheme.Name:
		return HighContrastTheme
	default:
		return DefaultTheme
	}
}

// Styles holds every style the board needs for one theme and mode.
type Styles struct {
	theme      Theme
	colorblind bool

	Title   lipgloss.Style
	Notice  lipgloss.Style
	Muted   lipgloss.Style
	Overlay lipgloss.Style
	Bar     lipgloss.Style
}

// NewStyles builds styles for theme; colorblind swaps the right/displaced
// palette and adds a marker next to scored letters.
func NewStyles(theme Theme, colorblind bool) Styles {
	bar := theme.Right
	if colorblind {
		bar = theme.RightAlt
	}
	return Styles{
		theme:      theme,
		colorblind: colorblind,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Notice:     lipgloss.NewStyle().Bold(true).Foreground(theme.Rejected),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 3),
		Bar: lipgloss.NewStyle().Foreground(theme.OnTile).Background(bar),
	}
}

// Colorblind reports whether the alternative palette is active.
func (s Styles) Colorblind() bool { return s.colorblind }

// fill is the background for a scored status; ok is false for typing.
func (s Styles) fill(st game.Status) (lipgloss.AdaptiveColor, bool) {
	switch st {
	case game.StatusRight:
		if s.colorblind {
			return s.theme.RightAlt, true
		}
		return s.theme.Right, true
	case game.StatusDisplaced:
		if s.colorblind {
			return s.theme.DisplacedAlt, true
		}
		return s.theme.Displaced, true
	case game.StatusWrong:
		return s.theme.Wrong, true
	}
	return lipgloss.AdaptiveColor{}, false
}

// marker is the colorblind suffix for a status.
func (s Styles) marker(st game.Status) string {
	if !s.colorblind {
		return " "
	}
	switch st {
	case game.StatusRight:
		return "="
	case game.StatusDisplaced:
		return "~"
	}
	return " "
}

// Tile styles one board cell.
func (s Styles) Tile(st game.Status) lipgloss.Style {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.theme.Border).
		Foreground(s.theme.Foreground).
		Bold(true)

	if st == game.StatusWordlistError {
		return base.BorderForeground(s.theme.Rejected).Foreground(s.theme.Rejected)
	}
	if bg, ok := s.fill(st); ok {
		return base.BorderForeground(bg).Background(bg).Foreground(s.theme.OnTile)
	}
	return base
}

// Key composes the style of a keyboard button from its kind, hint and
// whether it can be pressed.
func (s Styles) Key(b Button) lipgloss.Style {
	st := lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1).
		Background(s.theme.Key).
		Foreground(s.theme.Foreground)

	if b.Action {
		st = st.Bold(true).Padding(0, 2)
	}
	if bg, ok := s.fill(b.State); ok {
		st = st.Background(bg).Foreground(s.theme.OnTile)
	}
	if !b.Enabled {
		st = st.Faint(true)
	}
	return st
}
