package port

import "github.com/bnema/dockable/internal/domain/entity"

//go:generate mockery --name=ContentFactory --name=Renderable --name=LayoutObserver --output=mocks --outpkg=mocks --with-expecter

// Content is what a factory returns for a window tab: a renderable unit plus
// an opaque payload the engine hands back untouched.
type Content struct {
	Unit Renderable
	Data any
}

// ContentFactory maps content identifiers to hosted content.
// The engine only ever calls through this interface and never inspects
// concrete content types.
type ContentFactory interface {
	// Lookup returns the content behind id, or false when unknown.
	Lookup(id entity.ContentID) (Content, bool)
}

// Renderable is a unit of hosted content drawn inside a panel tab.
type Renderable interface {
	// Attach hands the content its bridge back to the engine. Called the
	// first time the content is shown and again each time it moves to
	// another panel; content reports its preferred size from here.
	Attach(win Window)

	// Render draws the content into an area of the given size.
	// Units are those of the renderer (cells for the terminal host).
	Render(size entity.Size) string
}

// Window is the hosted-content bridge exposed by the engine for one tab.
type Window interface {
	// Panel returns the panel currently hosting the tab, or "" once closed.
	Panel() entity.PanelID
	ContentID() entity.ContentID
	Data() any

	// SetTitle updates the tab title on the next frame when it changed.
	SetTitle(title string)

	// SetPreferredSize reports the size the content wants when floating.
	// Ignored unless the tab is the active one of its panel.
	SetPreferredSize(w, h float64)
}

// LayoutObserver is notified by the engine after state changes.
type LayoutObserver interface {
	// LayoutChanged is called after every committed mutation with the
	// freshly resolved layout.
	LayoutChanged(layout *entity.Layout)

	// PreferredSizeRefreshed is called after a just-opened panel was placed
	// using its newly reported preferred size.
	PreferredSizeRefreshed(panel entity.PanelID)
}
