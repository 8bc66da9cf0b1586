package dock_test

import (
	"testing"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/application/port/mocks"
	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/ui/dock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func hostedSnapshot() *entity.LayoutSnapshot {
	return &entity.LayoutSnapshot{
		Root: &entity.PanelSnapshot{ID: "main", Windows: []entity.ContentID{"editor", "console"}},
	}
}

func TestWindowContext_UnknownContent(t *testing.T) {
	e := newEngine(t, dock.EngineConfig{}, hostedSnapshot())

	w, err := e.WindowContext("ghost")

	assert.Nil(t, w)
	assert.ErrorIs(t, err, dock.ErrContentNotHosted)
}

func TestWindowContext_DataAndPanel(t *testing.T) {
	factory := mocks.NewMockContentFactory(t)
	factory.EXPECT().Lookup(entity.ContentID("editor")).
		Return(port.Content{Data: "payload"}, true).Once()
	e := newEngine(t, dock.EngineConfig{ContentFactory: factory}, hostedSnapshot())

	w, err := e.WindowContext("editor")
	require.NoError(t, err)
	again, err := e.WindowContext("editor")
	require.NoError(t, err)

	assert.Same(t, w, again)
	assert.Equal(t, "payload", w.Data())
	assert.Equal(t, entity.ContentID("editor"), w.ContentID())
	assert.Equal(t, entity.PanelID("main"), w.Panel())

	require.NoError(t, e.CloseTab("main", 0))
	assert.Equal(t, entity.PanelID(""), w.Panel(), "closed content has no panel")
}

func TestEngine_RenderableAttachesOnce(t *testing.T) {
	unit := mocks.NewMockRenderable(t)
	factory := mocks.NewMockContentFactory(t)
	factory.EXPECT().Lookup(entity.ContentID("editor")).
		Return(port.Content{Unit: unit, Data: 42}, true)
	factory.EXPECT().Lookup(entity.ContentID("ghost")).
		Return(port.Content{}, false)

	var attached port.Window
	unit.EXPECT().Attach(mock.Anything).
		Run(func(win port.Window) { attached = win }).
		Once()

	e := newEngine(t, dock.EngineConfig{ContentFactory: factory}, hostedSnapshot())

	r, ok := e.Renderable("editor")
	require.True(t, ok)
	assert.Same(t, unit, r)
	_, ok = e.Renderable("editor")
	require.True(t, ok)
	_, ok = e.Renderable("ghost")
	assert.False(t, ok)

	require.NotNil(t, attached)
	assert.Equal(t, 42, attached.Data())
	assert.Equal(t, entity.PanelID("main"), attached.Panel())
}

func TestWindowContext_SetTitleIsDeferred(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockFrameScheduler(ctrl)

	var queued []func()
	sched.EXPECT().Schedule(gomock.Any()).
		Do(func(fn func()) { queued = append(queued, fn) }).
		Times(1)

	e := newEngine(t, dock.EngineConfig{Scheduler: sched}, hostedSnapshot())
	w, err := e.WindowContext("editor")
	require.NoError(t, err)

	w.SetTitle("main.go")

	p, _ := e.Panel("main")
	assert.Equal(t, "", p.WindowTitles[0], "applied on the next frame")
	assert.Equal(t, 0, e.RunFrame(), "external scheduler owns the queue")

	require.Len(t, queued, 1)
	queued[0]()

	p, _ = e.Panel("main")
	assert.Equal(t, "main.go", p.WindowTitles[0])
	assert.Equal(t, "main.go", p.DisplayTitle(0))

	// Unchanged titles do not schedule again.
	w.SetTitle("main.go")
}

func TestWindowContext_SetTitleInternalQueue(t *testing.T) {
	obs := mocks.NewMockLayoutObserver(t)
	obs.EXPECT().LayoutChanged(mock.Anything).Times(2)
	e := newEngine(t, dock.EngineConfig{Observer: obs}, hostedSnapshot())

	w, err := e.WindowContext("console")
	require.NoError(t, err)
	w.SetTitle("bash")
	assert.True(t, e.Pending())

	assert.Equal(t, 1, e.RunFrame())
	assert.False(t, e.Pending())

	p, _ := e.Panel("main")
	assert.Equal(t, []string{"", "bash"}, p.WindowTitles)
}

func TestWindowContext_SetPreferredSizePlacesJustOpenedPanel(t *testing.T) {
	// Arrange
	obs := mocks.NewMockLayoutObserver(t)
	obs.EXPECT().LayoutChanged(mock.Anything).Times(3)
	obs.EXPECT().PreferredSizeRefreshed(entity.PanelID("p1")).Once()

	e := newEngine(t, dock.EngineConfig{Observer: obs}, nil)
	e.SetBounds(entity.NewRect(0, 0, 800, 600))

	id, err := e.OpenWindow([]entity.ContentID{"dialog"}, usecase.OpenOptions{
		AnchorRect: entity.NewRect(280, 200, 40, 20),
		AlignX:     0,
		AlignY:     1,
	})
	require.NoError(t, err)
	require.Equal(t, entity.PanelID("p1"), id)

	w, err := e.WindowContext("dialog")
	require.NoError(t, err)

	// Act
	w.SetPreferredSize(100, 50)
	before, _ := e.Panel(id)
	ran := e.RunFrame()

	// Assert
	assert.Equal(t, 1, ran)
	assert.True(t, before.Rect.Size().IsZero(), "not placed before the frame runs")

	p, _ := e.Panel(id)
	assert.Equal(t, entity.NewRect(250, 220, 100, 50), p.Rect)
	assert.Equal(t, entity.Size{W: 100, H: 50}, p.PreferredFloatingSize)

	// Same size again: nothing to do.
	w.SetPreferredSize(100, 50)
	assert.False(t, e.Pending())
}

func TestWindowContext_SetPreferredSizeInactiveTabIgnored(t *testing.T) {
	e := newEngine(t, dock.EngineConfig{}, hostedSnapshot())

	w, err := e.WindowContext("console")
	require.NoError(t, err)
	w.SetPreferredSize(300, 200)

	assert.False(t, e.Pending())
	p, _ := e.Panel("main")
	assert.True(t, p.PreferredFloatingSize.IsZero())
}

func TestWindowContext_SetPreferredSizeAfterPlacementDoesNotMove(t *testing.T) {
	obs := mocks.NewMockLayoutObserver(t)
	obs.EXPECT().LayoutChanged(mock.Anything).Maybe()
	obs.EXPECT().PreferredSizeRefreshed(mock.Anything).Once()

	e := newEngine(t, dock.EngineConfig{Observer: obs}, nil)
	e.SetBounds(entity.NewRect(0, 0, 800, 600))
	id, err := e.OpenWindow([]entity.ContentID{"dialog"}, usecase.OpenOptions{
		AnchorRect: entity.NewRect(100, 100, 0, 0),
	})
	require.NoError(t, err)

	w, err := e.WindowContext("dialog")
	require.NoError(t, err)
	w.SetPreferredSize(100, 50)
	e.RunFrame()
	placed, _ := e.Panel(id)

	w.SetPreferredSize(300, 200)
	e.RunFrame()

	p, _ := e.Panel(id)
	assert.Equal(t, placed.Rect, p.Rect, "placement is one-shot")
	assert.Equal(t, entity.Size{W: 300, H: 200}, p.PreferredFloatingSize)
}

func TestEngine_RenderableReattachesAfterMove(t *testing.T) {
	// Arrange
	unit := mocks.NewMockRenderable(t)
	factory := mocks.NewMockContentFactory(t)
	factory.EXPECT().Lookup(entity.ContentID("console")).
		Return(port.Content{Unit: unit}, true)

	var hosts []entity.PanelID
	unit.EXPECT().Attach(mock.Anything).
		Run(func(win port.Window) {
			hosts = append(hosts, win.Panel())
			win.SetPreferredSize(120, 80)
		}).
		Times(2)

	e := newEngine(t, dock.EngineConfig{ContentFactory: factory}, hostedSnapshot())
	e.SetBounds(entity.NewRect(0, 0, 800, 600))
	_, ok := e.Renderable("console")
	require.True(t, ok)

	// Act: tear the console tab out.
	require.Equal(t, 1, e.PointerDown(pt(150, 10)).Tab)
	require.True(t, e.PointerMove(pt(200, 100)))
	e.PointerUp(pt(200, 100))
	_, ok = e.Renderable("console")
	require.True(t, ok)
	_, ok = e.Renderable("console")
	require.True(t, ok)
	e.RunFrame()

	// Assert
	assert.Equal(t, []entity.PanelID{"main", "p1"}, hosts)
	p, _ := e.Panel("p1")
	assert.Equal(t, entity.Size{W: 120, H: 80}, p.Rect.Size(), "placed at the size reported to the new host")
}
