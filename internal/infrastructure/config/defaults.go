package config

// Default configuration constants
const (
	// Layout defaults
	defaultDividerSize  = 6.0
	defaultAnchorOffset = 20.0

	// Interaction defaults
	defaultDragThreshold = 10.0 // pixels on either axis
	defaultCaptureRadius = 50.0 // pixels
	defaultHeaderHeight  = 24.0
	defaultMinOverlap    = 40.0
	defaultMinFloatingW  = 40.0

	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultMaxLogSizeMB  = 10
	defaultMaxLogBackups = 3
	defaultMaxLogAgeDays = 7 // days

	// Demo defaults
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			DividerSize:  defaultDividerSize,
			AnchorOffset: defaultAnchorOffset,
			RootAnchors:  true,
		},
		Interaction: InteractionConfig{
			DragThreshold:     defaultDragThreshold,
			CaptureRadius:     defaultCaptureRadius,
			MinFloatingWidth:  defaultMinFloatingW,
			MinFloatingHeight: defaultHeaderHeight,
			MinOverlap:        defaultMinOverlap,
			HeaderHeight:      defaultHeaderHeight,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			LogDir:     getDefaultLogDir(),
			MaxSizeMB:  defaultMaxLogSizeMB,
			MaxBackups: defaultMaxLogBackups,
			MaxAge:     defaultMaxLogAgeDays,
		},
		Demo: DemoConfig{
			CellWidth:  defaultCellWidth,
			CellHeight: defaultCellHeight,
			Theme: ThemeColor{
				Border:       "#5C6370",
				ActiveBorder: "#4A90E2",
				Tab:          "#ABB2BF",
				ActiveTab:    "#FFA500",
				Divider:      "#3E4451",
				Anchor:       "#00D4AA",
				Preview:      "#9B59B6",
			},
		},
	}
}
