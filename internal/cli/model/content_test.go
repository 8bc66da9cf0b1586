package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockable/internal/domain/entity"
)

// fakeWindow records bridge calls.
type fakeWindow struct {
	titles []string
	sizes  []entity.Size
}

func (*fakeWindow) Panel() entity.PanelID           { return "" }
func (*fakeWindow) ContentID() entity.ContentID     { return "" }
func (*fakeWindow) Data() any                       { return nil }
func (f *fakeWindow) SetTitle(title string)         { f.titles = append(f.titles, title) }
func (f *fakeWindow) SetPreferredSize(w, h float64) { f.sizes = append(f.sizes, entity.Size{W: w, H: h}) }

func TestDemoContent_Lookup(t *testing.T) {
	d := NewDemoContent(10, 20)

	c, ok := d.Lookup(ContentEditor)
	require.True(t, ok)
	assert.Equal(t, KindText, c.Data)

	ghost, ok := d.Lookup("from-a-layout-file")
	require.True(t, ok, "unknown ids get a placeholder")
	assert.Equal(t, "from-a-layout-file", ghost.Unit.Render(entity.Size{W: 40, H: 2}))

	again, _ := d.Lookup("from-a-layout-file")
	assert.Same(t, ghost.Unit, again.Unit)

	_, ok = d.Lookup("")
	assert.False(t, ok)
}

func TestDemoContent_NewNoteReportsSizeInPixels(t *testing.T) {
	d := NewDemoContent(10, 20)

	id := d.NewNote()
	assert.Equal(t, entity.ContentID("note-1"), id)
	assert.Equal(t, entity.ContentID("note-2"), d.NewNote())

	c, ok := d.Lookup(id)
	require.True(t, ok)
	win := &fakeWindow{}
	c.Unit.Attach(win)

	assert.Equal(t, []string{"note 1"}, win.titles)
	assert.Equal(t, []entity.Size{{W: noteWidthCells * 10, H: noteHeightCells * 20}}, win.sizes)
}

func TestDemoContent_AttachWithoutSize(t *testing.T) {
	d := NewDemoContent(10, 20)
	c, _ := d.Lookup(ContentConsole)
	win := &fakeWindow{}

	c.Unit.Attach(win)

	assert.Equal(t, []string{"console"}, win.titles)
	assert.Empty(t, win.sizes)
}

func TestDemoWindow_RenderClips(t *testing.T) {
	d := NewDemoContent(10, 20)
	c, _ := d.Lookup(ContentEditor)

	out := c.Unit.Render(entity.Size{W: 8, H: 2})

	assert.Equal(t, "func mai\n    engi", out)
	assert.Empty(t, c.Unit.Render(entity.Size{W: 8, H: 0}))
}

func TestDemoWindow_ClockUpdatesTitle(t *testing.T) {
	d := NewDemoContent(10, 20)
	d.now = func() time.Time { return time.Date(2026, 3, 2, 9, 41, 7, 0, time.UTC) }
	d.items[ContentClock].now = d.now
	c, _ := d.Lookup(ContentClock)
	win := &fakeWindow{}
	c.Unit.Attach(win)

	out := c.Unit.Render(entity.Size{W: 20, H: 2})

	assert.Equal(t, "09:41:07\nMon 02 Mar", out)
	assert.Equal(t, []string{"clock", "clock 09:41"}, win.titles)
	assert.Equal(t, KindClock, c.Data)
}

func TestDemoContent_NewMenu(t *testing.T) {
	d := NewDemoContent(10, 20)

	id := d.NewMenu()
	c, ok := d.Lookup(id)

	require.True(t, ok)
	assert.Equal(t, entity.ContentID("menu-1"), id)
	assert.Equal(t, KindMenu, c.Data)

	item, ok := d.MenuItem(id, 0)
	assert.True(t, ok)
	assert.Equal(t, MenuNewNote, item)
	item, ok = d.MenuItem(id, 3)
	assert.True(t, ok)
	assert.Equal(t, MenuClose, item)
	_, ok = d.MenuItem(id, 4)
	assert.False(t, ok)
	_, ok = d.MenuItem(d.NewNote(), 0)
	assert.False(t, ok)
}
