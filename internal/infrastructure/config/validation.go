package config

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateInteraction(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDemo(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	if config.Layout.DividerSize < 0 {
		validationErrors = append(validationErrors, "layout.divider_size must be non-negative")
	}
	if config.Layout.AnchorOffset < 0 {
		validationErrors = append(validationErrors, "layout.anchor_offset must be non-negative")
	}
	return validationErrors
}

func validateInteraction(config *Config) []string {
	var validationErrors []string
	in := config.Interaction
	if in.DragThreshold < 0 {
		validationErrors = append(validationErrors, "interaction.drag_threshold must be non-negative")
	}
	if in.CaptureRadius < 0 {
		validationErrors = append(validationErrors, "interaction.capture_radius must be non-negative")
	}
	if in.MinFloatingWidth < 1 {
		validationErrors = append(validationErrors, "interaction.min_floating_width must be at least 1")
	}
	if in.MinFloatingHeight < 1 {
		validationErrors = append(validationErrors, "interaction.min_floating_height must be at least 1")
	}
	if in.MinOverlap < 0 {
		validationErrors = append(validationErrors, "interaction.min_overlap must be non-negative")
	}
	if in.HeaderHeight < 0 {
		validationErrors = append(validationErrors, "interaction.header_height must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}

func validateDemo(config *Config) []string {
	var validationErrors []string
	if config.Demo.CellWidth < 1 || config.Demo.CellHeight < 1 {
		validationErrors = append(validationErrors, "demo.cell_width and demo.cell_height must be at least 1")
	}
	theme := config.Demo.Theme
	colors := []struct {
		key   string
		value string
	}{
		{"border", theme.Border},
		{"active_border", theme.ActiveBorder},
		{"tab", theme.Tab},
		{"active_tab", theme.ActiveTab},
		{"divider", theme.Divider},
		{"anchor", theme.Anchor},
		{"preview", theme.Preview},
	}
	for _, c := range colors {
		if c.value != "" && !hexColor.MatchString(c.value) {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"demo.theme.%s must be a hex color like #4A90E2 (got: %s)", c.key, c.value,
			))
		}
	}
	return validationErrors
}
