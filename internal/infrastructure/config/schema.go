package config

// Config is the user configuration of dockable.
type Config struct {
	Layout      LayoutConfig      `mapstructure:"layout" toml:"layout" json:"layout" yaml:"layout"`
	Interaction InteractionConfig `mapstructure:"interaction" toml:"interaction" json:"interaction" yaml:"interaction"`
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging" json:"logging" yaml:"logging"`
	Demo        DemoConfig        `mapstructure:"demo" toml:"demo" json:"demo" yaml:"demo"`
}

// LayoutConfig tunes the geometry of docked panels.
type LayoutConfig struct {
	// DividerSize is the thickness of the gap between split children, in pixels.
	DividerSize float64 `mapstructure:"divider_size" toml:"divider_size" json:"divider_size" yaml:"divider_size" jsonschema:"minimum=0,default=6"`
	// AnchorOffset is how far edge anchors sit inside their panel, in pixels.
	AnchorOffset float64 `mapstructure:"anchor_offset" toml:"anchor_offset" json:"anchor_offset" yaml:"anchor_offset" jsonschema:"minimum=0,default=20"`
	// RootAnchors offers drop targets along the whole workspace edges.
	RootAnchors bool `mapstructure:"root_anchors" toml:"root_anchors" json:"root_anchors" yaml:"root_anchors" jsonschema:"default=true"`
}

// InteractionConfig tunes pointer dragging and floating panels.
type InteractionConfig struct {
	DragThreshold    float64 `mapstructure:"drag_threshold" toml:"drag_threshold" json:"drag_threshold" yaml:"drag_threshold" jsonschema:"minimum=0,default=10"`
	CaptureRadius    float64 `mapstructure:"capture_radius" toml:"capture_radius" json:"capture_radius" yaml:"capture_radius" jsonschema:"minimum=0,default=50"`
	MinFloatingWidth float64 `mapstructure:"min_floating_width" toml:"min_floating_width" json:"min_floating_width" yaml:"min_floating_width" jsonschema:"minimum=1,default=40"`
	// MinFloatingHeight defaults to the header height so a panel can shrink to its title bar.
	MinFloatingHeight float64 `mapstructure:"min_floating_height" toml:"min_floating_height" json:"min_floating_height" yaml:"min_floating_height" jsonschema:"minimum=1,default=24"`
	// MinOverlap is how much of a floating header stays inside the workspace.
	MinOverlap   float64 `mapstructure:"min_overlap" toml:"min_overlap" json:"min_overlap" yaml:"min_overlap" jsonschema:"minimum=0,default=40"`
	HeaderHeight float64 `mapstructure:"header_height" toml:"header_height" json:"header_height" yaml:"header_height" jsonschema:"minimum=0,default=24"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" yaml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" yaml:"format" jsonschema:"enum=text,enum=json,enum=console,default=console"`
	// EnableFileLog writes logs to LogDir. The terminal demo always logs to file.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log" yaml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir" yaml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb" jsonschema:"minimum=1,default=10"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" yaml:"max_backups" jsonschema:"minimum=0,default=3"`
	MaxAge        int    `mapstructure:"max_age" toml:"max_age" json:"max_age" yaml:"max_age" jsonschema:"minimum=0,default=7"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress" yaml:"compress"`
}

// DemoConfig drives the terminal demo.
type DemoConfig struct {
	// CellWidth and CellHeight convert terminal cells to engine pixels.
	CellWidth  float64 `mapstructure:"cell_width" toml:"cell_width" json:"cell_width" yaml:"cell_width" jsonschema:"minimum=1,default=8"`
	CellHeight float64 `mapstructure:"cell_height" toml:"cell_height" json:"cell_height" yaml:"cell_height" jsonschema:"minimum=1,default=16"`
	// LayoutFile is an optional layout snapshot (JSON) loaded at startup.
	LayoutFile string     `mapstructure:"layout_file" toml:"layout_file" json:"layout_file" yaml:"layout_file"`
	Theme      ThemeColor `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"`
}

// ThemeColor holds the demo palette as hex colors.
type ThemeColor struct {
	Border       string `mapstructure:"border" toml:"border" json:"border" yaml:"border"`
	ActiveBorder string `mapstructure:"active_border" toml:"active_border" json:"active_border" yaml:"active_border"`
	Tab          string `mapstructure:"tab" toml:"tab" json:"tab" yaml:"tab"`
	ActiveTab    string `mapstructure:"active_tab" toml:"active_tab" json:"active_tab" yaml:"active_tab"`
	Divider      string `mapstructure:"divider" toml:"divider" json:"divider" yaml:"divider"`
	Anchor       string `mapstructure:"anchor" toml:"anchor" json:"anchor" yaml:"anchor"`
	Preview      string `mapstructure:"preview" toml:"preview" json:"preview" yaml:"preview"`
}
