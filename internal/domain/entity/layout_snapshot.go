package entity

import (
	"errors"
	"fmt"
)

// LayoutSnapshotVersion is the current schema version for layout snapshots.
const LayoutSnapshotVersion = 1

// ErrInvalidSnapshot is returned when a snapshot cannot be turned into a dockspace.
var ErrInvalidSnapshot = errors.New("invalid layout snapshot")

// LayoutSnapshot is the serializable tree handed to the engine at startup.
type LayoutSnapshot struct {
	Version  int              `json:"version"`
	Root     *PanelSnapshot   `json:"root"`
	Floating []*PanelSnapshot `json:"floating,omitempty"`
	Active   PanelID          `json:"active,omitempty"`
}

// PanelSnapshot captures a panel and, for splits, its two children.
type PanelSnapshot struct {
	ID        PanelID          `json:"id"`
	Windows   []ContentID      `json:"windows,omitempty"`
	Titles    []string         `json:"titles,omitempty"`
	Active    int              `json:"active,omitempty"`
	Split     SplitDirection   `json:"split,omitempty" jsonschema:"enum=none,enum=horizontal,enum=vertical"`
	SplitSize float64          `json:"split_size,omitempty"`
	Children  []*PanelSnapshot `json:"children,omitempty"`
	Rect      *Rect            `json:"rect,omitempty"`
	Ephemeral bool             `json:"ephemeral,omitempty"`
}

// SnapshotFromDockspace captures a live dockspace.
func SnapshotFromDockspace(ds *Dockspace) *LayoutSnapshot {
	snap := &LayoutSnapshot{
		Version: LayoutSnapshotVersion,
		Active:  ds.Active,
	}
	snap.Root = snapshotPanel(ds, ds.Root)
	for _, p := range ds.FloatingPanels() {
		snap.Floating = append(snap.Floating, snapshotPanel(ds, p.ID))
	}
	return snap
}

func snapshotPanel(ds *Dockspace, id PanelID) *PanelSnapshot {
	p := ds.Panel(id)
	if p == nil {
		return nil
	}
	s := &PanelSnapshot{
		ID:        p.ID,
		Windows:   append([]ContentID(nil), p.WindowIDs...),
		Titles:    append([]string(nil), p.WindowTitles...),
		Active:    p.CurWindowIndex,
		Split:     p.Split,
		Ephemeral: p.Ephemeral,
	}
	if p.IsSplit() {
		s.SplitSize = p.SplitSize
		for _, child := range p.Children {
			s.Children = append(s.Children, snapshotPanel(ds, child))
		}
	}
	if p.Floating {
		r := p.Rect
		s.Rect = &r
	}
	return s
}

// Build turns the snapshot into a dockspace and validates it.
func (s *LayoutSnapshot) Build() (*Dockspace, error) {
	if s == nil || s.Root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrInvalidSnapshot)
	}
	if s.Version > LayoutSnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	if s.Root.ID == "" {
		return nil, fmt.Errorf("%w: root without id", ErrInvalidSnapshot)
	}

	ds := NewDockspace(s.Root.ID)
	delete(ds.panels, s.Root.ID)
	if err := buildPanel(ds, s.Root, ""); err != nil {
		return nil, err
	}

	for _, fs := range s.Floating {
		if fs == nil {
			continue
		}
		if len(fs.Children) > 0 {
			return nil, fmt.Errorf("%w: floating panel %q has children", ErrInvalidSnapshot, fs.ID)
		}
		if len(fs.Windows) == 0 {
			return nil, fmt.Errorf("%w: floating panel %q has no windows", ErrInvalidSnapshot, fs.ID)
		}
		if err := buildPanel(ds, fs, ""); err != nil {
			return nil, err
		}
		p := ds.Panel(fs.ID)
		p.Floating = true
		ds.AddFloating(p.ID)
		// Without a usable rect the panel is placed at the origin once sized.
		if fs.Rect != nil && !fs.Rect.IsEmpty() {
			p.Rect = *fs.Rect
		} else {
			ds.SetPlacement(p.ID, PlacementHint{})
		}
	}

	ds.Active = s.Active
	if ds.Panel(ds.Active) == nil {
		ds.Active = ""
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return ds, nil
}

func buildPanel(ds *Dockspace, s *PanelSnapshot, parent PanelID) error {
	if s == nil {
		return fmt.Errorf("%w: nil panel under %q", ErrInvalidSnapshot, parent)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: panel without id under %q", ErrInvalidSnapshot, parent)
	}
	if ds.Panel(s.ID) != nil {
		return fmt.Errorf("%w: duplicate panel id %q", ErrInvalidSnapshot, s.ID)
	}

	p := NewPanel(s.ID)
	p.Parent = parent
	p.Ephemeral = s.Ephemeral
	ds.Add(p)

	if len(s.Children) > 0 {
		if len(s.Children) != 2 {
			return fmt.Errorf("%w: split %q has %d children", ErrInvalidSnapshot, s.ID, len(s.Children))
		}
		p.Split = s.Split
		if p.Split == SplitNone {
			p.Split = SplitHorizontal
		}
		p.SplitSize = DefaultSplitSize
		if s.SplitSize != 0 {
			p.SplitSize = ClampSplitSize(s.SplitSize)
		}
		for _, child := range s.Children {
			if err := buildPanel(ds, child, p.ID); err != nil {
				return err
			}
			p.Children = append(p.Children, child.ID)
		}
		return nil
	}

	p.WindowIDs = append([]ContentID(nil), s.Windows...)
	p.WindowTitles = make([]string, len(p.WindowIDs))
	copy(p.WindowTitles, s.Titles)
	if len(p.WindowIDs) > 0 {
		p.CurWindowIndex = min(max(s.Active, 0), len(p.WindowIDs)-1)
	}
	return nil
}
