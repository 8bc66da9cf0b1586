package dock

import (
	"fmt"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
)

// WindowContext is the bridge between one hosted content and the engine.
// Content keeps it for its whole life; the owning panel may change under it
// as tabs are dragged around.
type WindowContext struct {
	engine    *Engine
	contentID entity.ContentID
	data      any
}

var _ port.Window = (*WindowContext)(nil)

// WindowContext returns the bridge for a hosted content, creating it on
// first use.
func (e *Engine) WindowContext(contentID entity.ContentID) (*WindowContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, _ := e.ds.FindWindow(contentID); p == nil {
		return nil, fmt.Errorf("%w: %q", ErrContentNotHosted, contentID)
	}
	return e.windowLocked(contentID), nil
}

func (e *Engine) windowLocked(contentID entity.ContentID) *WindowContext {
	if w, ok := e.windows[contentID]; ok {
		return w
	}
	w := &WindowContext{engine: e, contentID: contentID}
	if e.factory != nil {
		if c, ok := e.factory.Lookup(contentID); ok {
			w.data = c.Data
		}
	}
	e.windows[contentID] = w
	return w
}

// Renderable resolves the content unit behind contentID. The unit receives
// its WindowContext through Attach the first time it is resolved and again
// after it moved to another panel, so it can report its size to the new host.
func (e *Engine) Renderable(contentID entity.ContentID) (port.Renderable, bool) {
	if e.factory == nil {
		return nil, false
	}
	c, ok := e.factory.Lookup(contentID)
	if !ok || c.Unit == nil {
		return nil, false
	}

	e.mu.Lock()
	var host entity.PanelID
	if p, _ := e.ds.FindWindow(contentID); p != nil {
		host = p.ID
	}
	prev, seen := e.attached[contentID]
	mount := !seen || (host != "" && host != prev)
	if mount {
		e.attached[contentID] = host
	}
	w := e.windowLocked(contentID)
	e.mu.Unlock()

	if mount {
		logging.FromContext(logging.WithContentID(e.ctx, string(contentID))).
			Debug().
			Str("panel_id", string(host)).
			Bool("remount", seen).
			Msg("content attached")
		c.Unit.Attach(w)
	}
	return c.Unit, true
}

// Panel returns the panel hosting the content, or "" once it was closed.
func (w *WindowContext) Panel() entity.PanelID {
	w.engine.mu.Lock()
	defer w.engine.mu.Unlock()
	if p, _ := w.engine.ds.FindWindow(w.contentID); p != nil {
		return p.ID
	}
	return ""
}

// ContentID returns the hosted content id.
func (w *WindowContext) ContentID() entity.ContentID {
	return w.contentID
}

// Data returns the payload the content factory attached to the content.
func (w *WindowContext) Data() any {
	return w.data
}

// SetTitle renames the tab on the next frame. Unchanged titles are ignored.
func (w *WindowContext) SetTitle(title string) {
	e := w.engine
	e.mu.Lock()
	p, idx := e.ds.FindWindow(w.contentID)
	changed := p != nil && p.Title(idx) != title
	e.mu.Unlock()
	if !changed {
		return
	}

	e.scheduler.Schedule(func() {
		e.update(func() bool {
			p, _ := e.ds.FindWindow(w.contentID)
			if p == nil {
				return false
			}
			return e.panels.SetWindowTitle(e.ds, p.ID, w.contentID, title)
		})
	})
}

// SetPreferredSize records the size the content wants when floating, on the
// next frame. Ignored unless the content is the active tab of its panel or
// when the size did not change. A panel still waiting for its first size is
// placed right after.
func (w *WindowContext) SetPreferredSize(width, height float64) {
	e := w.engine
	size := entity.Size{W: width, H: height}

	e.mu.Lock()
	p, _ := e.ds.FindWindow(w.contentID)
	changed := p != nil && p.ActiveWindow() == w.contentID && p.PreferredFloatingSize != size
	e.mu.Unlock()
	if !changed {
		return
	}

	e.scheduler.Schedule(func() {
		e.update(func() bool {
			p, _ := e.ds.FindWindow(w.contentID)
			if p == nil {
				return false
			}
			if !e.panels.SetPreferredSize(e.ds, p.ID, w.contentID, size) {
				return false
			}
			logging.FromContext(logging.WithPanelID(e.ctx, string(p.ID))).Debug().
				Float64("w", size.W).
				Float64("h", size.H).
				Bool("just_opened", e.ds.JustOpened(p.ID)).
				Msg("preferred size set")
			return true
		})
	})
}
