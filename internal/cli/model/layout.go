package model

import "github.com/bnema/dockable/internal/domain/entity"

// DefaultLayout is the startup layout of the demo: a sidebar next to an
// editor stacked over a console.
func DefaultLayout() *entity.LayoutSnapshot {
	return &entity.LayoutSnapshot{
		Version: entity.LayoutSnapshotVersion,
		Root: &entity.PanelSnapshot{
			ID:        "main",
			Split:     entity.SplitHorizontal,
			SplitSize: 0.25,
			Children: []*entity.PanelSnapshot{
				{ID: "sidebar", Windows: []entity.ContentID{ContentFiles}},
				{
					ID:        "work",
					Split:     entity.SplitVertical,
					SplitSize: 0.7,
					Children: []*entity.PanelSnapshot{
						{ID: "editor", Windows: []entity.ContentID{ContentEditor, ContentHelp}},
						{ID: "bottom", Windows: []entity.ContentID{ContentConsole, ContentClock}},
					},
				},
			},
		},
		Active: "editor",
	}
}
