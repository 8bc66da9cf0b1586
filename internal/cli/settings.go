package cli

import (
	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/infrastructure/config"
	"github.com/bnema/dockable/internal/ui/dock"
	"github.com/bnema/dockable/internal/ui/input"
)

// Terminal chrome, in cells.
const (
	demoTabPaddingCells   = 4 // one space each side plus the close button
	demoCloseButtonCells  = 2
	demoResizeHandleCells = 1
)

// EngineSettings maps the [layout] and [interaction] sections onto engine
// settings, in pixels.
func EngineSettings(cfg *config.Config) dock.Settings {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := dock.DefaultSettings()

	s.Layout = usecase.ResolveOptions{
		DividerSize:  cfg.Layout.DividerSize,
		AnchorOffset: cfg.Layout.AnchorOffset,
		RootAnchors:  cfg.Layout.RootAnchors,
	}
	s.Floating = usecase.FloatingOptions{
		MinOverlap:   cfg.Interaction.MinOverlap,
		HeaderHeight: cfg.Interaction.HeaderHeight,
		MinSize: entity.Size{
			W: cfg.Interaction.MinFloatingWidth,
			H: cfg.Interaction.MinFloatingHeight,
		},
	}
	s.Pointer = input.Settings{
		DragThreshold: cfg.Interaction.DragThreshold,
		CaptureRadius: cfg.Interaction.CaptureRadius,
	}
	s.Hit.HeaderHeight = cfg.Interaction.HeaderHeight
	return s
}

// DemoSettings is EngineSettings with the panel chrome snapped to the
// terminal grid: one header row, tabs sized from their titles.
func DemoSettings(cfg *config.Config) dock.Settings {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := EngineSettings(cfg)
	cw, ch := cfg.Demo.CellWidth, cfg.Demo.CellHeight

	s.Floating.HeaderHeight = ch
	s.Floating.MinSize.H = max(s.Floating.MinSize.H, ch)
	s.Hit = input.HitOptions{
		HeaderHeight:     ch,
		ResizeHandleSize: demoResizeHandleCells * cw,
		CloseButtonWidth: demoCloseButtonCells * cw,
		DividerGrab:      cw / 2,
		TabWidth:         input.TextTabWidth(cw, demoTabPaddingCells*cw),
	}
	return s
}
