package entity

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidDockspace is returned by Validate when a structural invariant is broken.
var ErrInvalidDockspace = errors.New("invalid dockspace")

// PlacementHint is a one-shot request to position a floating panel next to
// the rect that spawned it, once its preferred size is known.
// AlignX/AlignY are -1 (before), 0 (centered) or 1 (after) along each axis.
type PlacementHint struct {
	AnchorRect Rect
	AlignX     int
	AlignY     int
	// Fallback sizes the panel when its content reports nothing in time.
	// Zero means the minimum floating size.
	Fallback Size
	// Frames counts the frames the hint has waited for a size.
	Frames int
}

// Dockspace is the arena holding every panel, docked or floating.
// Panels reference each other by ID so structural edits only rewrite links
// and a panel keeps its identity when it moves between roles.
type Dockspace struct {
	panels map[PanelID]*Panel

	// Root of the docked tree. Never empty once the dockspace is created.
	Root PanelID
	// Floating panels in z-order, front = last.
	Floating []PanelID
	// Active is the focused panel, docked or floating, or "".
	Active PanelID

	// One-shot side tables, consumed once then cleared.
	placements  map[PanelID]PlacementHint
	appearOnTop map[PanelID]struct{}
}

// NewDockspace creates a dockspace whose docked tree is a single empty leaf.
func NewDockspace(rootID PanelID) *Dockspace {
	ds := &Dockspace{
		panels:      make(map[PanelID]*Panel),
		placements:  make(map[PanelID]PlacementHint),
		appearOnTop: make(map[PanelID]struct{}),
	}
	root := NewPanel(rootID)
	ds.panels[rootID] = root
	ds.Root = rootID
	return ds
}

// Panel returns the panel with the given ID, or nil.
func (d *Dockspace) Panel(id PanelID) *Panel {
	if d == nil || id == "" {
		return nil
	}
	return d.panels[id]
}

// Len returns the number of panels in the arena.
func (d *Dockspace) Len() int {
	return len(d.panels)
}

// Add registers a panel in the arena. An existing panel with the same ID is replaced.
func (d *Dockspace) Add(p *Panel) {
	d.panels[p.ID] = p
}

// Delete removes a panel from the arena and from every side table.
// Links pointing at it are left to the caller.
func (d *Dockspace) Delete(id PanelID) {
	delete(d.panels, id)
	delete(d.placements, id)
	delete(d.appearOnTop, id)
	d.RemoveFloating(id)
	if d.Active == id {
		d.Active = ""
	}
}

// RootPanel returns the root of the docked tree.
func (d *Dockspace) RootPanel() *Panel {
	return d.Panel(d.Root)
}

// Walk traverses the docked tree depth-first, first child before second.
// Returns early if fn returns false.
func (d *Dockspace) Walk(fn func(*Panel) bool) {
	d.walkFrom(d.Root, fn)
}

func (d *Dockspace) walkFrom(id PanelID, fn func(*Panel) bool) bool {
	p := d.Panel(id)
	if p == nil {
		return true
	}
	if !fn(p) {
		return false
	}
	for _, child := range p.Children {
		if !d.walkFrom(child, fn) {
			return false
		}
	}
	return true
}

// Leaves returns the docked leaves in layout order.
func (d *Dockspace) Leaves() []*Panel {
	var leaves []*Panel
	d.Walk(func(p *Panel) bool {
		if p.IsLeaf() {
			leaves = append(leaves, p)
		}
		return true
	})
	return leaves
}

// FloatingPanels returns floating panels back to front.
func (d *Dockspace) FloatingPanels() []*Panel {
	out := make([]*Panel, 0, len(d.Floating))
	for _, id := range d.Floating {
		if p := d.Panel(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// IsDocked reports whether id is reachable from the docked root.
func (d *Dockspace) IsDocked(id PanelID) bool {
	found := false
	d.Walk(func(p *Panel) bool {
		if p.ID == id {
			found = true
			return false
		}
		return true
	})
	return found
}

// IsAncestor reports whether ancestor sits strictly above node in the docked tree.
func (d *Dockspace) IsAncestor(ancestor, node PanelID) bool {
	p := d.Panel(node)
	for p != nil && p.Parent != "" {
		if p.Parent == ancestor {
			return true
		}
		p = d.Panel(p.Parent)
	}
	return false
}

// ReplaceChild rewrites the link from parent to oldChild so it points at
// newChild. An empty parent means oldChild was the root.
func (d *Dockspace) ReplaceChild(parent, oldChild, newChild PanelID) {
	if n := d.Panel(newChild); n != nil {
		n.Parent = parent
	}
	if parent == "" {
		d.Root = newChild
		return
	}
	p := d.Panel(parent)
	if p == nil {
		return
	}
	for i, child := range p.Children {
		if child == oldChild {
			p.Children[i] = newChild
			return
		}
	}
}

// FindWindow returns the panel hosting content id and the tab index.
// Docked leaves are searched first, then floating panels front to back.
func (d *Dockspace) FindWindow(id ContentID) (*Panel, int) {
	for _, p := range d.Leaves() {
		if idx := p.WindowIndex(id); idx >= 0 {
			return p, idx
		}
	}
	for i := len(d.Floating) - 1; i >= 0; i-- {
		p := d.Panel(d.Floating[i])
		if p == nil {
			continue
		}
		if idx := p.WindowIndex(id); idx >= 0 {
			return p, idx
		}
	}
	return nil, -1
}

// AddFloating puts a panel on top of the floating stack.
func (d *Dockspace) AddFloating(id PanelID) {
	d.RemoveFloating(id)
	d.Floating = append(d.Floating, id)
}

// RemoveFloating drops a panel from the floating stack.
func (d *Dockspace) RemoveFloating(id PanelID) {
	d.Floating = slices.DeleteFunc(d.Floating, func(f PanelID) bool { return f == id })
}

// SetPlacement records a one-shot placement hint for a floating panel.
func (d *Dockspace) SetPlacement(id PanelID, hint PlacementHint) {
	d.placements[id] = hint
}

// Placement returns the pending placement hint of a panel.
func (d *Dockspace) Placement(id PanelID) (PlacementHint, bool) {
	hint, ok := d.placements[id]
	return hint, ok
}

// ClearPlacement consumes the placement hint of a panel.
func (d *Dockspace) ClearPlacement(id PanelID) {
	delete(d.placements, id)
}

// JustOpened reports whether the panel still waits for its initial placement.
func (d *Dockspace) JustOpened(id PanelID) bool {
	_, ok := d.placements[id]
	return ok
}

// ArmAppearOnTop marks a panel so the next raise does not reorder the stack.
func (d *Dockspace) ArmAppearOnTop(id PanelID) {
	d.appearOnTop[id] = struct{}{}
}

// AppearOnTopPending reports whether any floating panel carries the mark.
func (d *Dockspace) AppearOnTopPending() bool {
	for _, id := range d.Floating {
		if _, ok := d.appearOnTop[id]; ok {
			return true
		}
	}
	return false
}

// ClearAppearOnTop drops every appear-on-top mark.
func (d *Dockspace) ClearAppearOnTop() {
	clear(d.appearOnTop)
}

// Validate checks the structural invariants of the arena.
func (d *Dockspace) Validate() error {
	root := d.RootPanel()
	if root == nil {
		return fmt.Errorf("%w: root %q missing", ErrInvalidDockspace, d.Root)
	}
	if root.Parent != "" {
		return fmt.Errorf("%w: root %q has parent %q", ErrInvalidDockspace, root.ID, root.Parent)
	}

	seen := make(map[PanelID]bool)
	var err error
	d.Walk(func(p *Panel) bool {
		if seen[p.ID] {
			err = fmt.Errorf("%w: panel %q reached twice", ErrInvalidDockspace, p.ID)
			return false
		}
		seen[p.ID] = true
		err = d.validatePanel(p)
		return err == nil
	})
	if err != nil {
		return err
	}

	for _, id := range d.Floating {
		p := d.Panel(id)
		if p == nil {
			return fmt.Errorf("%w: floating panel %q missing", ErrInvalidDockspace, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: panel %q both docked and floating", ErrInvalidDockspace, id)
		}
		seen[id] = true
		if !p.Floating || !p.IsLeaf() || p.Parent != "" {
			return fmt.Errorf("%w: floating panel %q has tree links", ErrInvalidDockspace, id)
		}
		if err := validateTabs(p); err != nil {
			return err
		}
	}

	if len(seen) != len(d.panels) {
		return fmt.Errorf("%w: %d orphan panels", ErrInvalidDockspace, len(d.panels)-len(seen))
	}
	if d.Active != "" && d.Panel(d.Active) == nil {
		return fmt.Errorf("%w: active panel %q missing", ErrInvalidDockspace, d.Active)
	}
	return nil
}

func (d *Dockspace) validatePanel(p *Panel) error {
	if p.Floating {
		return fmt.Errorf("%w: docked panel %q marked floating", ErrInvalidDockspace, p.ID)
	}
	switch len(p.Children) {
	case 0:
		if p.IsEmpty() && p.ID != d.Root {
			return fmt.Errorf("%w: empty docked leaf %q", ErrInvalidDockspace, p.ID)
		}
		return validateTabs(p)
	case 2:
		if len(p.WindowIDs) != 0 {
			return fmt.Errorf("%w: split %q hosts tabs", ErrInvalidDockspace, p.ID)
		}
		if p.Split == SplitNone {
			return fmt.Errorf("%w: split %q has no direction", ErrInvalidDockspace, p.ID)
		}
		if p.SplitSize < MinSplitSize || p.SplitSize > MaxSplitSize {
			return fmt.Errorf("%w: split %q size %v out of range", ErrInvalidDockspace, p.ID, p.SplitSize)
		}
		for _, child := range p.Children {
			c := d.Panel(child)
			if c == nil {
				return fmt.Errorf("%w: split %q child %q missing", ErrInvalidDockspace, p.ID, child)
			}
			if c.Parent != p.ID {
				return fmt.Errorf("%w: panel %q parent link %q, want %q", ErrInvalidDockspace, c.ID, c.Parent, p.ID)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: panel %q has %d children", ErrInvalidDockspace, p.ID, len(p.Children))
	}
}

func validateTabs(p *Panel) error {
	if len(p.WindowTitles) != len(p.WindowIDs) {
		return fmt.Errorf("%w: panel %q has %d titles for %d tabs",
			ErrInvalidDockspace, p.ID, len(p.WindowTitles), len(p.WindowIDs))
	}
	if len(p.WindowIDs) == 0 {
		if p.CurWindowIndex != 0 {
			return fmt.Errorf("%w: empty panel %q active index %d", ErrInvalidDockspace, p.ID, p.CurWindowIndex)
		}
		return nil
	}
	if p.CurWindowIndex < 0 || p.CurWindowIndex >= len(p.WindowIDs) {
		return fmt.Errorf("%w: panel %q active index %d out of range", ErrInvalidDockspace, p.ID, p.CurWindowIndex)
	}
	return nil
}
