package model

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/domain/entity"
)

// Content kinds handed back as the opaque window data.
const (
	KindText  = "text"
	KindClock = "clock"
	KindNote  = "note"
	KindMenu  = "menu"
)

// Built-in content of the default layout.
const (
	ContentFiles   entity.ContentID = "files"
	ContentEditor  entity.ContentID = "editor"
	ContentHelp    entity.ContentID = "help"
	ContentConsole entity.ContentID = "console"
	ContentClock   entity.ContentID = "clock"
)

// Popup menu entries, top to bottom.
const (
	MenuNewNote    = "New note"
	MenuSplitRight = "Split right"
	MenuSplitDown  = "Split down"
	MenuClose      = "Close"
)

var menuItems = []string{MenuNewNote, MenuSplitRight, MenuSplitDown, MenuClose}

const (
	noteWidthCells  = 34
	noteHeightCells = 8
	menuWidthCells  = 18
	menuHeightCells = 6
)

var _ port.ContentFactory = (*DemoContent)(nil)

// DemoContent is the content factory of the terminal demo. Unknown ids get
// a placeholder so any layout file can be shown.
type DemoContent struct {
	mu    sync.Mutex
	items map[entity.ContentID]*demoWindow
	notes int
	menus int

	cellW, cellH float64
	now          func() time.Time
}

// NewDemoContent creates the factory with the built-in content. Cell sizes
// convert preferred sizes to engine pixels.
func NewDemoContent(cellW, cellH float64) *DemoContent {
	d := &DemoContent{
		items: make(map[entity.ContentID]*demoWindow),
		cellW: cellW,
		cellH: cellH,
		now:   time.Now,
	}
	d.add(ContentFiles, KindText, "files", []string{
		"▾ cmd/", "    dockable/", "▾ internal/", "    domain/", "    ui/dock/", "  go.mod", "  README.md",
	}, entity.Size{})
	d.add(ContentEditor, KindText, "editor", []string{
		"func main() {",
		"    engine := dock.NewEngine(ctx, cfg)",
		"    engine.SetBounds(bounds)",
		"}",
	}, entity.Size{})
	d.add(ContentHelp, KindText, "help", []string{
		"Drag a tab or header to move a panel.",
		"Drop it on a highlighted anchor to dock it.",
		"Drag a divider to resize a split.",
		"Press n for a new floating note.",
	}, entity.Size{})
	d.add(ContentConsole, KindText, "console", []string{"$ dockable demo", "layout resolved"}, entity.Size{})
	d.add(ContentClock, KindClock, "clock", nil, entity.Size{W: 20, H: 4})
	return d
}

func (d *DemoContent) add(id entity.ContentID, kind, title string, lines []string, cells entity.Size) *demoWindow {
	w := &demoWindow{
		kind:  kind,
		title: title,
		lines: lines,
		size:  entity.Size{W: cells.W * d.cellW, H: cells.H * d.cellH},
		now:   d.now,
	}
	d.items[id] = w
	return w
}

// Lookup returns the content behind id, creating a placeholder for
// unknown ids.
func (d *DemoContent) Lookup(id entity.ContentID) (port.Content, bool) {
	if id == "" {
		return port.Content{}, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.items[id]
	if !ok {
		w = d.add(id, KindText, string(id), []string{string(id)}, entity.Size{})
	}
	return port.Content{Unit: w, Data: w.kind}, true
}

// NewNote registers a floating note and returns its id.
func (d *DemoContent) NewNote() entity.ContentID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.notes++
	id := entity.ContentID(fmt.Sprintf("note-%d", d.notes))
	d.add(id, KindNote, fmt.Sprintf("note %d", d.notes), []string{
		fmt.Sprintf("Note %d", d.notes),
		"",
		"Drag my header onto an anchor",
		"to dock me.",
	}, entity.Size{W: noteWidthCells, H: noteHeightCells})
	return id
}

// NewMenu registers a popup menu and returns its id.
func (d *DemoContent) NewMenu() entity.ContentID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.menus++
	id := entity.ContentID(fmt.Sprintf("menu-%d", d.menus))
	d.add(id, KindMenu, "menu", menuItems, entity.Size{W: menuWidthCells, H: menuHeightCells})
	return id
}

// MenuItem returns the entry on body row of a popup menu.
func (d *DemoContent) MenuItem(id entity.ContentID, row int) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.items[id]
	if !ok || w.kind != KindMenu || row < 0 || row >= len(w.lines) {
		return "", false
	}
	return w.lines[row], true
}

// demoWindow is one piece of demo content.
type demoWindow struct {
	mu    sync.Mutex
	kind  string
	title string
	lines []string
	// size is the preferred floating size in pixels, zero when unknown.
	size entity.Size
	now  func() time.Time
	win  port.Window
}

func (w *demoWindow) Attach(win port.Window) {
	w.mu.Lock()
	w.win = win
	title, size := w.title, w.size
	w.mu.Unlock()

	win.SetTitle(title)
	if !size.IsZero() {
		win.SetPreferredSize(size.W, size.H)
	}
}

func (w *demoWindow) Render(size entity.Size) string {
	w.mu.Lock()
	lines := w.lines
	win := w.win
	w.mu.Unlock()

	if w.kind == KindClock {
		now := w.now()
		lines = []string{now.Format("15:04:05"), now.Format("Mon 02 Jan")}
		if win != nil {
			win.SetTitle("clock " + now.Format("15:04"))
		}
	}

	rows := min(len(lines), max(int(size.H), 0))
	cols := max(int(size.W), 0)
	out := make([]string, 0, rows)
	for _, line := range lines[:rows] {
		if r := []rune(line); len(r) > cols {
			line = string(r[:cols])
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
