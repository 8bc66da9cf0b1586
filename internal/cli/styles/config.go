package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path and whether it exists.
func (r *ConfigRenderer) RenderConfigInfo(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.ActiveBorder)
	pathStyle := r.theme.Subtle

	status := r.theme.Subtle.Render("Config file will be created on first run with all defaults.")
	if exists {
		status = fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(r.theme.Success).Render(IconCheck), "Config file found")
	}

	return fmt.Sprintf(
		"\n  %s Config %s\n  %s\n",
		iconStyle.Render(IconConfig),
		pathStyle.Render(path),
		status,
	)
}

// RenderWritten renders the success message after a file was written.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Wrote %s to %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(what),
		r.theme.Subtle.Render(path),
	)
}

// RenderExists renders the message shown when init would overwrite a file.
func (r *ConfigRenderer) RenderExists(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.ActiveBorder)

	return fmt.Sprintf(
		"\n  %s %s already exists\n  %s\n",
		iconStyle.Render(IconInfo),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("Use --force to rewrite it with the defaults."),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
