// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockable/internal/infrastructure/config"
)

// Theme holds lipgloss colors and styles derived from config.
type Theme struct {
	// Dock colors (from config.ThemeColor)
	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
	Tab          lipgloss.Color
	ActiveTab    lipgloss.Color
	Divider      lipgloss.Color
	Anchor       lipgloss.Color
	Preview      lipgloss.Color

	// Additional semantic colors
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	// Dock styles
	PanelBorder       lipgloss.Style
	ActivePanelBorder lipgloss.Style
	TabLabel          lipgloss.Style
	ActiveTabLabel    lipgloss.Style
	DividerStyle      lipgloss.Style
	AnchorStyle       lipgloss.Style
	NearestAnchor     lipgloss.Style
	PreviewStyle      lipgloss.Style
	StatusBar         lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultPalette returns the stock demo colors.
func DefaultPalette() config.ThemeColor {
	return config.DefaultConfig().Demo.Theme
}

// NewTheme creates a Theme from config.
func NewTheme(cfg *config.Config) *Theme {
	if cfg == nil {
		return NewThemeFromPalette(DefaultPalette())
	}
	return NewThemeFromPalette(cfg.Demo.Theme)
}

// NewThemeFromPalette creates a Theme from a palette. Empty colors fall back
// to the stock ones.
func NewThemeFromPalette(p config.ThemeColor) *Theme {
	def := DefaultPalette()
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}

	t := &Theme{
		Border:       pick(p.Border, def.Border),
		ActiveBorder: pick(p.ActiveBorder, def.ActiveBorder),
		Tab:          pick(p.Tab, def.Tab),
		ActiveTab:    pick(p.ActiveTab, def.ActiveTab),
		Divider:      pick(p.Divider, def.Divider),
		Anchor:       pick(p.Anchor, def.Anchor),
		Preview:      pick(p.Preview, def.Preview),

		// Semantic colors (not in config)
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#909090"),
		Error:   lipgloss.Color("#ef4444"),
		Success: lipgloss.Color("#4ade80"),
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.ActiveBorder).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.PanelBorder = lipgloss.NewStyle().
		Foreground(t.Border)

	t.ActivePanelBorder = lipgloss.NewStyle().
		Foreground(t.ActiveBorder).
		Bold(true)

	t.TabLabel = lipgloss.NewStyle().
		Foreground(t.Tab)

	t.ActiveTabLabel = lipgloss.NewStyle().
		Foreground(t.ActiveTab).
		Bold(true).
		Underline(true)

	t.DividerStyle = lipgloss.NewStyle().
		Foreground(t.Divider)

	t.AnchorStyle = lipgloss.NewStyle().
		Foreground(t.Anchor)

	t.NearestAnchor = lipgloss.NewStyle().
		Foreground(t.Anchor).
		Reverse(true).
		Bold(true)

	t.PreviewStyle = lipgloss.NewStyle().
		Foreground(t.Preview)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.ActiveBorder)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)
}
