// Package dock hosts the docking engine: one dockspace, its container bounds,
// the pointer machine, the last resolved layout and a deferred frame queue.
package dock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/dockable/internal/application/port"
	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
	"github.com/bnema/dockable/internal/ui/input"
)

// DefaultRootID is the id of the docked root placeholder of a fresh engine.
const DefaultRootID entity.PanelID = "root"

// ErrContentNotHosted is returned when no panel hosts the requested content.
var ErrContentNotHosted = errors.New("content not hosted")

// Settings groups every tunable of the engine.
type Settings struct {
	Layout   usecase.ResolveOptions
	Floating usecase.FloatingOptions
	Pointer  input.Settings
	Hit      input.HitOptions
}

// DefaultSettings returns the stock engine settings.
func DefaultSettings() Settings {
	return Settings{
		Layout:   usecase.DefaultResolveOptions(),
		Floating: usecase.DefaultFloatingOptions(),
		Pointer:  input.DefaultSettings(),
		Hit:      input.DefaultHitOptions(),
	}
}

// EngineConfig holds the dependencies of an Engine.
type EngineConfig struct {
	ContentFactory port.ContentFactory
	// Scheduler defers bridge updates. Nil uses an internal queue drained by RunFrame.
	Scheduler port.FrameScheduler
	// Observer is optional.
	Observer    port.LayoutObserver
	Settings    Settings
	IDGenerator usecase.IDGenerator
	RootID      entity.PanelID
}

// Engine is the docking facade. Its methods are safe to call from several
// goroutines; observer callbacks and deferred work run outside its lock.
type Engine struct {
	mu  sync.Mutex
	ctx context.Context

	ds       *entity.Dockspace
	bounds   entity.Rect
	layout   *entity.Layout
	settings Settings

	idGen    usecase.IDGenerator
	panels   *usecase.ManagePanelsUseCase
	floating *usecase.ManageFloatingUseCase
	resolver *usecase.ResolveLayoutUseCase
	pointer  *input.PointerMachine

	factory   port.ContentFactory
	scheduler port.FrameScheduler
	queue     *frameQueue
	observer  port.LayoutObserver

	windows map[entity.ContentID]*WindowContext
	// attached maps content to the panel hosting it when Attach last ran.
	attached map[entity.ContentID]entity.PanelID
}

// NewEngine creates an engine holding an empty root placeholder.
func NewEngine(ctx context.Context, cfg EngineConfig) *Engine {
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}
	rootID := cfg.RootID
	if rootID == "" {
		rootID = DefaultRootID
	}

	e := &Engine{
		ds:        entity.NewDockspace(rootID),
		idGen:     idGen,
		factory:   cfg.ContentFactory,
		scheduler: cfg.Scheduler,
		observer:  cfg.Observer,
		windows:   make(map[entity.ContentID]*WindowContext),
		attached:  make(map[entity.ContentID]entity.PanelID),
	}
	if e.scheduler == nil {
		e.queue = &frameQueue{}
		e.scheduler = e.queue
	}

	e.ctx = logging.WithEngineID(logging.WithComponent(ctx, "dock"), uuid.NewString())
	e.applySettingsLocked(withDefaults(cfg.Settings))
	e.layout = e.resolver.Resolve(e.ds, e.bounds)

	logging.FromContext(e.ctx).Debug().Str("root", string(rootID)).Msg("engine created")
	return e
}

// withDefaults replaces zero sub-settings with their defaults.
func withDefaults(s Settings) Settings {
	def := DefaultSettings()
	if s.Layout == (usecase.ResolveOptions{}) {
		s.Layout = def.Layout
	}
	if s.Floating == (usecase.FloatingOptions{}) {
		s.Floating = def.Floating
	}
	if s.Pointer == (input.Settings{}) {
		s.Pointer = def.Pointer
	}
	if s.Hit.HeaderHeight == 0 && s.Hit.TabWidth == nil {
		s.Hit = def.Hit
	}
	if s.Hit.TabWidth == nil {
		s.Hit.TabWidth = def.Hit.TabWidth
	}
	return s
}

func (e *Engine) applySettingsLocked(s Settings) {
	e.settings = s
	e.panels = usecase.NewManagePanelsUseCase(e.idGen)
	e.floating = usecase.NewManageFloatingUseCase(e.panels, s.Floating)
	e.resolver = usecase.NewResolveLayoutUseCase(s.Layout)
	if e.pointer == nil {
		e.pointer = input.NewPointerMachine(input.PointerConfig{
			Panels:   e.panels,
			Floating: e.floating,
			Settings: s.Pointer,
		})
		return
	}
	// Keep the drag in progress but route it through the new use cases.
	state := e.pointer.State()
	if state.Down {
		e.pointer.Up(e.ctx, e.frameLocked(), state.Position)
	}
	onChange := e.pointer.OnActionChange()
	e.pointer = input.NewPointerMachine(input.PointerConfig{
		Panels:   e.panels,
		Floating: e.floating,
		Settings: s.Pointer,
	})
	e.pointer.SetOnActionChange(onChange)
}

// ApplySettings swaps every tunable and re-resolves. A drag in progress is
// released where it stands.
func (e *Engine) ApplySettings(s Settings) {
	e.update(func() bool {
		e.applySettingsLocked(withDefaults(s))
		e.floating.ClampAll(e.ctx, e.ds, e.bounds)
		logging.FromContext(e.ctx).Info().Msg("engine settings applied")
		return true
	})
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetOnActionChange registers a callback fired on pointer action transitions.
// It runs under the engine lock and must not call back into the engine.
func (e *Engine) SetOnActionChange(fn func(from, to input.Action)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pointer.SetOnActionChange(fn)
}

// update runs fn under the lock and, when it reports a change, commits and
// notifies the observer once the lock is released.
func (e *Engine) update(fn func() bool) {
	e.mu.Lock()
	if !fn() {
		e.mu.Unlock()
		return
	}
	layout, placed := e.commitLocked()
	e.mu.Unlock()
	e.notify(layout, placed)
}

func (e *Engine) commitLocked() (*entity.Layout, []entity.PanelID) {
	var placed []entity.PanelID
	if !e.bounds.IsEmpty() {
		placed = e.floating.ApplyPlacements(e.ctx, e.ds, e.bounds)
	}
	e.layout = e.resolver.Resolve(e.ds, e.bounds)
	return e.layout, placed
}

func (e *Engine) notify(layout *entity.Layout, placed []entity.PanelID) {
	if e.observer == nil {
		return
	}
	e.observer.LayoutChanged(layout)
	for _, id := range placed {
		e.observer.PreferredSizeRefreshed(id)
	}
}

func (e *Engine) frameLocked() input.Frame {
	return input.Frame{Dockspace: e.ds, Layout: e.layout, Container: e.bounds}
}

// SetBounds resizes the container: docked panels follow proportionally and
// floating panels are clamped back into reach.
func (e *Engine) SetBounds(r entity.Rect) {
	e.update(func() bool {
		if r == e.bounds {
			return false
		}
		e.bounds = r
		n := e.floating.ClampAll(e.ctx, e.ds, r)
		logging.FromContext(e.ctx).Debug().
			Float64("w", r.W).
			Float64("h", r.H).
			Int("clamped", n).
			Msg("bounds set")
		return true
	})
}

// Bounds returns the container rect.
func (e *Engine) Bounds() entity.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

// Layout returns the last resolved layout. It is never mutated afterwards.
func (e *Engine) Layout() *entity.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

// Root returns the docked root id.
func (e *Engine) Root() entity.PanelID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ds.Root
}

// Active returns the panel that last received focus, or "".
func (e *Engine) Active() entity.PanelID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ds.Active
}

// FloatingPanels returns floating panel ids back to front.
func (e *Engine) FloatingPanels() []entity.PanelID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.ds.Floating)
}

// Panel returns a copy of a panel.
func (e *Engine) Panel(id entity.PanelID) (entity.Panel, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.ds.Panel(id)
	if p == nil {
		return entity.Panel{}, false
	}
	cp := *p
	cp.WindowIDs = slices.Clone(p.WindowIDs)
	cp.WindowTitles = slices.Clone(p.WindowTitles)
	cp.Children = slices.Clone(p.Children)
	return cp, true
}

// Pointer returns the pointer machine state for renderers.
func (e *Engine) Pointer() input.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pointer.State()
}

// HitTest reports what lies under pt.
func (e *Engine) HitTest(pt entity.Point) input.Hit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return input.HitTest(e.layout, e.ds, pt, e.settings.Hit)
}

// PointerDown routes a press to the target under pt and returns that target.
func (e *Engine) PointerDown(pt entity.Point) input.Hit {
	var hit input.Hit
	e.update(func() bool {
		hit = input.HitTest(e.layout, e.ds, pt, e.settings.Hit)
		f := e.frameLocked()
		switch hit.Kind {
		case input.HitTab:
			return e.pointer.TabDown(e.ctx, f, hit.Panel, hit.Tab, pt)
		case input.HitTabClose:
			return e.pointer.TabClose(e.ctx, f, hit.Panel, hit.Tab)
		case input.HitHeader:
			return e.pointer.HeaderDown(e.ctx, f, hit.Panel, pt)
		case input.HitResizeHandle:
			return e.pointer.ResizeHandleDown(e.ctx, f, hit.Panel, pt)
		case input.HitDivider:
			e.pointer.DividerDown(e.ctx, hit.Divider, pt)
			return false
		case input.HitBody:
			return e.pointer.PanelActivate(e.ctx, f, hit.Panel)
		default:
			return false
		}
	})
	return hit
}

// PointerMove feeds a pointer position. Returns true when the layout changed.
func (e *Engine) PointerMove(pt entity.Point) bool {
	changed := false
	e.update(func() bool {
		changed = e.pointer.Move(e.ctx, e.frameLocked(), pt)
		return changed
	})
	return changed
}

// PointerUp ends the current drag. Returns true when the layout changed.
func (e *Engine) PointerUp(pt entity.Point) bool {
	changed := false
	e.update(func() bool {
		changed = e.pointer.Up(e.ctx, e.frameLocked(), pt)
		return changed
	})
	return changed
}

// OpenWindow opens a floating panel hosting contentIDs. It is placed once its
// active content reports a preferred size.
func (e *Engine) OpenWindow(contentIDs []entity.ContentID, opts usecase.OpenOptions) (entity.PanelID, error) {
	var id entity.PanelID
	err := e.mutate(func() error {
		p, err := e.floating.Open(e.ctx, e.ds, contentIDs, opts)
		if err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	return id, err
}

// AddWindow appends a tab to a panel. An empty panelID targets the root
// placeholder while it is empty, else the active panel.
func (e *Engine) AddWindow(panelID entity.PanelID, contentID entity.ContentID) error {
	return e.mutate(func() error {
		target := panelID
		if target == "" {
			target = e.defaultTargetLocked()
		}
		return e.panels.AddWindow(e.ctx, e.ds, target, contentID)
	})
}

func (e *Engine) defaultTargetLocked() entity.PanelID {
	if root := e.ds.RootPanel(); root != nil && root.IsLeaf() && root.IsEmpty() {
		return root.ID
	}
	if e.ds.Active != "" && e.ds.Panel(e.ds.Active) != nil {
		return e.ds.Active
	}
	if leaves := e.ds.Leaves(); len(leaves) > 0 {
		return leaves[0].ID
	}
	return e.ds.Root
}

// Dock docks source onto target.
func (e *Engine) Dock(source, target entity.PanelID, mode entity.DockMode) error {
	return e.mutate(func() error {
		return e.panels.Dock(e.ctx, e.ds, source, target, mode)
	})
}

// SelectTab makes a tab the active one of its panel.
func (e *Engine) SelectTab(panelID entity.PanelID, index int) error {
	return e.mutate(func() error {
		return e.panels.SelectTab(e.ctx, e.ds, panelID, index)
	})
}

// CloseTab closes one tab.
func (e *Engine) CloseTab(panelID entity.PanelID, index int) error {
	return e.mutate(func() error {
		return e.panels.CloseTab(e.ctx, e.ds, panelID, index)
	})
}

// ClosePanel closes a panel with all its tabs.
func (e *Engine) ClosePanel(panelID entity.PanelID) error {
	return e.mutate(func() error {
		return e.panels.ClosePanel(e.ctx, e.ds, panelID)
	})
}

// DismissEphemerals closes every ephemeral floating panel.
func (e *Engine) DismissEphemerals() int {
	n := 0
	e.update(func() bool {
		n = e.floating.RemoveEphemerals(e.ctx, e.ds)
		return n > 0
	})
	return n
}

// mutate runs a use case operation and commits only when it succeeded.
func (e *Engine) mutate(fn func() error) error {
	var opErr error
	e.update(func() bool {
		opErr = fn()
		if opErr != nil {
			logging.FromContext(e.ctx).Debug().Err(opErr).Msg("operation rejected")
			return false
		}
		return true
	})
	return opErr
}

// LoadSnapshot replaces the dockspace with one built from snap. The current
// state is kept when snap is invalid.
func (e *Engine) LoadSnapshot(snap *entity.LayoutSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", entity.ErrInvalidSnapshot)
	}
	return e.mutate(func() error {
		ds, err := snap.Build()
		if err != nil {
			return err
		}
		if state := e.pointer.State(); state.Down {
			e.pointer.Up(e.ctx, e.frameLocked(), state.Position)
		}
		e.ds = ds
		e.floating.ClampAll(e.ctx, e.ds, e.bounds)
		logging.FromContext(e.ctx).Info().Int("panels", ds.Len()).Msg("layout snapshot loaded")
		return nil
	})
}

// Snapshot captures the current dockspace.
func (e *Engine) Snapshot() *entity.LayoutSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return entity.SnapshotFromDockspace(e.ds)
}

// RunFrame runs the work deferred to this frame and returns how many
// callbacks ran, always 0 with an external scheduler. Floating panels still
// waiting for a preferred size afterwards are placed at their fallback size
// once their grace period is over.
func (e *Engine) RunFrame() int {
	ran := 0
	if e.queue != nil {
		ran = e.queue.run()
	}
	e.update(func() bool {
		if e.bounds.IsEmpty() {
			return false
		}
		return len(e.floating.ExpirePlacements(e.ctx, e.ds, e.bounds)) > 0
	})
	return ran
}

// Pending reports whether deferred work waits for RunFrame.
func (e *Engine) Pending() bool {
	return e.queue != nil && e.queue.pending()
}

// frameQueue is the default FrameScheduler: callbacks wait for RunFrame.
type frameQueue struct {
	mu  sync.Mutex
	fns []func()
}

func (q *frameQueue) Schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

func (q *frameQueue) pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns) > 0
}

// run drains the queue. Callbacks scheduled while running wait for the next frame.
func (q *frameQueue) run() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
