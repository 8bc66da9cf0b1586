package entity

import "fmt"

// PanelID uniquely identifies a panel within a dockspace.
type PanelID string

// ContentID identifies the hosted content behind a window tab.
type ContentID string

// SplitDirection indicates how a split panel arranges its two children.
type SplitDirection int

const (
	SplitNone       SplitDirection = iota // Leaf panel
	SplitHorizontal                       // Left/right split, vertical divider line
	SplitVertical                         // Top/bottom split, horizontal divider line
)

func (d SplitDirection) String() string {
	switch d {
	case SplitHorizontal:
		return "horizontal"
	case SplitVertical:
		return "vertical"
	default:
		return "none"
	}
}

// MarshalText encodes the direction by name.
func (d SplitDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *SplitDirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*d = SplitNone
	case "horizontal":
		*d = SplitHorizontal
	case "vertical":
		*d = SplitVertical
	default:
		return fmt.Errorf("unknown split direction %q", text)
	}
	return nil
}

// DockMode says where a dropped panel lands relative to its target.
type DockMode int

const (
	DockFull DockMode = iota // Merge tabs into the target
	DockLeft
	DockRight
	DockTop
	DockBottom
)

func (m DockMode) String() string {
	switch m {
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	case DockTop:
		return "top"
	case DockBottom:
		return "bottom"
	default:
		return "full"
	}
}

// MarshalText encodes the mode by name.
func (m DockMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *DockMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full":
		*m = DockFull
	case "left":
		*m = DockLeft
	case "right":
		*m = DockRight
	case "top":
		*m = DockTop
	case "bottom":
		*m = DockBottom
	default:
		return fmt.Errorf("unknown dock mode %q", text)
	}
	return nil
}

// Split returns the split direction produced by docking with this mode.
func (m DockMode) Split() SplitDirection {
	switch m {
	case DockLeft, DockRight:
		return SplitHorizontal
	case DockTop, DockBottom:
		return SplitVertical
	default:
		return SplitNone
	}
}

// PlacesFirst reports whether the docked panel becomes the first (left/top) child.
func (m DockMode) PlacesFirst() bool {
	return m == DockLeft || m == DockTop
}

const (
	// MinSplitSize and MaxSplitSize bound the fraction given to a split's first child.
	MinSplitSize = 0.05
	MaxSplitSize = 0.95

	// DefaultSplitSize is used for every freshly created split.
	DefaultSplitSize = 0.5
)

// ClampSplitSize limits a split fraction to [MinSplitSize, MaxSplitSize].
func ClampSplitSize(v float64) float64 {
	return ClampFloat(v, MinSplitSize, MaxSplitSize)
}

// Panel is a node of the dock layout. It is either:
//   - Leaf: hosts zero or more window tabs
//   - Split: no tabs, exactly two children arranged along Split
//
// Floating panels are always leaves and live outside the docked tree.
type Panel struct {
	ID PanelID

	// Tabs
	WindowIDs      []ContentID
	WindowTitles   []string // parallel to WindowIDs
	CurWindowIndex int

	// Tree links, rewritten by structural edits
	Parent   PanelID // empty for the root and for floating panels
	Children []PanelID
	Split    SplitDirection

	// SplitSize is the fraction of space given to the first child.
	SplitSize float64

	Floating bool
	// Rect is authoritative for floating panels only; docked geometry comes
	// from the resolver.
	Rect Rect

	// Ephemeral panels are dismissed when focus moves elsewhere.
	Ephemeral bool

	// PreferredFloatingSize is reported by the active tab's content.
	PreferredFloatingSize Size
}

// NewPanel creates an empty, unattached leaf panel.
func NewPanel(id PanelID) *Panel {
	return &Panel{
		ID:        id,
		SplitSize: DefaultSplitSize,
	}
}

// IsSplit returns true if this panel splits into two children.
func (p *Panel) IsSplit() bool {
	return len(p.Children) == 2
}

// IsLeaf returns true if this panel hosts tabs instead of children.
func (p *Panel) IsLeaf() bool {
	return len(p.Children) == 0
}

// IsEmpty reports a leaf without any tab.
func (p *Panel) IsEmpty() bool {
	return p.IsLeaf() && len(p.WindowIDs) == 0
}

// First returns the left/top child of a split.
func (p *Panel) First() PanelID {
	if len(p.Children) > 0 {
		return p.Children[0]
	}
	return ""
}

// Second returns the right/bottom child of a split.
func (p *Panel) Second() PanelID {
	if len(p.Children) > 1 {
		return p.Children[1]
	}
	return ""
}

// WindowIndex returns the tab index of id, or -1.
func (p *Panel) WindowIndex(id ContentID) int {
	for i, w := range p.WindowIDs {
		if w == id {
			return i
		}
	}
	return -1
}

// ActiveWindow returns the content of the active tab, or "" when empty.
func (p *Panel) ActiveWindow() ContentID {
	if p.CurWindowIndex >= 0 && p.CurWindowIndex < len(p.WindowIDs) {
		return p.WindowIDs[p.CurWindowIndex]
	}
	return ""
}

// Title returns the title of tab idx, or "" when unknown.
func (p *Panel) Title(idx int) string {
	if idx >= 0 && idx < len(p.WindowTitles) {
		return p.WindowTitles[idx]
	}
	return ""
}

// DefaultWindowTitle is shown for tabs whose content never set a title.
const DefaultWindowTitle = "New Window"

// DisplayTitle returns the title shown on tab idx.
func (p *Panel) DisplayTitle(idx int) string {
	if t := p.Title(idx); t != "" {
		return t
	}
	return DefaultWindowTitle
}

// PanelRect pairs a panel with its resolved on-screen rectangle.
type PanelRect struct {
	Panel PanelID `json:"panel"`
	Rect  Rect    `json:"rect"`
	// Floating panels are listed after docked ones, in z-order.
	Floating bool `json:"floating,omitempty"`
}

// Divider is the draggable boundary between a split's two children.
type Divider struct {
	Panel PanelID        `json:"panel"` // owning split
	Rect  Rect           `json:"rect"`
	Split SplitDirection `json:"split"`

	// ResizeMin and ResizeMax span the owner's rect along the split axis;
	// a pointer at ResizeMin maps to SplitSize 0 and at ResizeMax to 1.
	ResizeMin float64 `json:"resize_min"`
	ResizeMax float64 `json:"resize_max"`
}

// AxisCoord picks the pointer coordinate that moves this divider.
func (d Divider) AxisCoord(p Point) float64 {
	if d.Split == SplitVertical {
		return p.Y
	}
	return p.X
}

// SplitSizeAt maps a pointer position onto a clamped split fraction.
func (d Divider) SplitSizeAt(p Point) float64 {
	span := d.ResizeMax - d.ResizeMin
	if span <= 0 {
		return DefaultSplitSize
	}
	return ClampSplitSize((d.AxisCoord(p) - d.ResizeMin) / span)
}

// Anchor is a drop target offered while a panel header is dragged.
type Anchor struct {
	Panel PanelID  `json:"panel"`
	Point Point    `json:"point"`
	Mode  DockMode `json:"mode"`
	// PreviewRect is the area the dropped panel would roughly occupy.
	PreviewRect Rect `json:"preview_rect"`
}

// Layout is the resolver output for one (dockspace, container) pair.
type Layout struct {
	Container  Rect        `json:"container"`
	PanelRects []PanelRect `json:"panel_rects"`
	Dividers   []Divider   `json:"dividers"`
	Anchors    []Anchor    `json:"anchors"`
}

// RectOf returns the resolved rect of a panel.
func (l *Layout) RectOf(id PanelID) (Rect, bool) {
	if l == nil {
		return Rect{}, false
	}
	for _, pr := range l.PanelRects {
		if pr.Panel == id {
			return pr.Rect, true
		}
	}
	return Rect{}, false
}

// DividerOf returns the divider owned by the given split.
func (l *Layout) DividerOf(id PanelID) (Divider, bool) {
	if l == nil {
		return Divider{}, false
	}
	for _, d := range l.Dividers {
		if d.Panel == id {
			return d, true
		}
	}
	return Divider{}, false
}

// AnchorFor returns the anchor of a panel for the given mode.
func (l *Layout) AnchorFor(id PanelID, mode DockMode) (Anchor, bool) {
	if l == nil {
		return Anchor{}, false
	}
	for _, a := range l.Anchors {
		if a.Panel == id && a.Mode == mode {
			return a, true
		}
	}
	return Anchor{}, false
}
