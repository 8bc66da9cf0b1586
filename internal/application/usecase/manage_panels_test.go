package usecase_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/bnema/dockable/internal/application/usecase"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func seqIDs(prefix string) usecase.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func leaf(id string, windows ...entity.ContentID) *entity.PanelSnapshot {
	return &entity.PanelSnapshot{ID: entity.PanelID(id), Windows: windows}
}

func split(id string, dir entity.SplitDirection, first, second *entity.PanelSnapshot) *entity.PanelSnapshot {
	return &entity.PanelSnapshot{
		ID:       entity.PanelID(id),
		Split:    dir,
		Children: []*entity.PanelSnapshot{first, second},
	}
}

func buildDockspace(t *testing.T, root *entity.PanelSnapshot, floating ...*entity.PanelSnapshot) *entity.Dockspace {
	t.Helper()
	ds, err := (&entity.LayoutSnapshot{Version: entity.LayoutSnapshotVersion, Root: root, Floating: floating}).Build()
	require.NoError(t, err)
	return ds
}

func TestManagePanels_MakePanel_SkipsTakenIDs(t *testing.T) {
	ctx := testContext()
	ds := entity.NewDockspace("p1")
	uc := usecase.NewManagePanelsUseCase(seqIDs("p"))

	p := uc.MakePanel(ctx, ds)

	assert.Equal(t, entity.PanelID("p2"), p.ID)
	assert.Same(t, p, ds.Panel("p2"))
	assert.True(t, p.IsEmpty())
	assert.False(t, p.Floating)
	assert.Empty(t, p.Parent)
}

func TestManagePanels_MakePanel_DefaultsToUUID(t *testing.T) {
	ctx := testContext()
	ds := entity.NewDockspace("root")
	uc := usecase.NewManagePanelsUseCase(nil)

	p := uc.MakePanel(ctx, ds)

	assert.Len(t, string(p.ID), 36)
}

func TestManagePanels_AddWindow(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("p0", "a"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.AddWindow(ctx, ds, "p0", "b"))
	require.NoError(t, uc.AddWindow(ctx, ds, "p0", "a"), "duplicate on the same panel is a no-op")

	p := ds.Panel("p0")
	assert.Equal(t, []entity.ContentID{"a", "b"}, p.WindowIDs)
	assert.Equal(t, []string{"", ""}, p.WindowTitles)
	assert.Equal(t, 0, p.CurWindowIndex, "adding to a non-empty panel keeps the active tab")

	err := uc.AddWindow(ctx, ds, "ghost", "c")
	assert.ErrorIs(t, err, usecase.ErrPanelNotFound)
}

func TestManagePanels_AddWindow_EmptyPanelActivatesNewTab(t *testing.T) {
	ctx := testContext()
	ds := entity.NewDockspace("root")
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.AddWindow(ctx, ds, "root", "a"))

	assert.Equal(t, 0, ds.RootPanel().CurWindowIndex)
	assert.Equal(t, entity.ContentID("a"), ds.RootPanel().ActiveWindow())
}

func TestManagePanels_AddWindow_SameContentOnTwoPanels(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, split("root", entity.SplitHorizontal, leaf("l", "a"), leaf("r", "b")))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.AddWindow(ctx, ds, "r", "a"))

	assert.Equal(t, []entity.ContentID{"b", "a"}, ds.Panel("r").WindowIDs)
	assert.Equal(t, []entity.ContentID{"a"}, ds.Panel("l").WindowIDs)
}

func TestManagePanels_RemoveWindow_ActiveIndex(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		remove     entity.ContentID
		wantTabs   []entity.ContentID
		wantActive int
	}{
		{"remove active middle tab picks next", 1, "b", []entity.ContentID{"a", "c"}, 1},
		{"remove active last tab picks previous", 2, "c", []entity.ContentID{"a", "b"}, 1},
		{"remove tab before active keeps it", 2, "a", []entity.ContentID{"b", "c"}, 1},
		{"remove tab after active keeps it", 0, "c", []entity.ContentID{"a", "b"}, 0},
		{"remove missing tab is a no-op", 1, "zz", []entity.ContentID{"a", "b", "c"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			snap := leaf("p0", "a", "b", "c")
			snap.Active = tt.active
			ds := buildDockspace(t, snap)
			uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

			require.NoError(t, uc.RemoveWindow(ctx, ds, "p0", tt.remove))

			p := ds.Panel("p0")
			assert.Equal(t, tt.wantTabs, p.WindowIDs)
			assert.Len(t, p.WindowTitles, len(tt.wantTabs))
			assert.Equal(t, tt.wantActive, p.CurWindowIndex)
		})
	}
}

func TestManagePanels_TabRoundTrip(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("p0", "a", "b", "c"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))
	before := append([]entity.ContentID(nil), ds.Panel("p0").WindowIDs...)

	require.NoError(t, uc.AddWindow(ctx, ds, "p0", "d"))
	require.NoError(t, uc.RemoveWindow(ctx, ds, "p0", "d"))

	assert.Equal(t, before, ds.Panel("p0").WindowIDs)
}

func TestManagePanels_SelectTab(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("p0", "a", "b"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.SelectTab(ctx, ds, "p0", 1))
	assert.Equal(t, 1, ds.Panel("p0").CurWindowIndex)

	require.NoError(t, uc.SelectTab(ctx, ds, "p0", 7))
	assert.Equal(t, 1, ds.Panel("p0").CurWindowIndex, "out of range index is ignored")
}

func TestManagePanels_CloseLastTabOfRightChild(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t,
		split("root", entity.SplitHorizontal,
			split("left", entity.SplitVertical, leaf("lt", "a"), leaf("lb", "b")),
			leaf("right", "c"),
		),
	)
	ds.Active = "right"
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))
	resolver := usecase.NewResolveLayoutUseCase(usecase.DefaultResolveOptions())
	container := entity.NewRect(0, 0, 800, 600)

	require.NoError(t, uc.CloseTab(ctx, ds, "right", 0))

	require.NoError(t, ds.Validate())
	assert.Equal(t, entity.PanelID("left"), ds.Root, "left subtree takes the root slot")
	assert.Nil(t, ds.Panel("right"))
	assert.Nil(t, ds.Panel("root"))
	assert.Equal(t, entity.PanelID("lt"), ds.Active)

	layout := resolver.Resolve(ds, container)
	lt, ok := layout.RectOf("lt")
	require.True(t, ok)
	lb, ok := layout.RectOf("lb")
	require.True(t, ok)
	assert.Equal(t, 800.0, lt.W)
	assert.Equal(t, 800.0, lb.W)
	assert.InDelta(t, 600.0, lt.H+lb.H+usecase.DefaultDividerSize, 1e-9)
}

func TestManagePanels_CoalesceToPlaceholder(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, split("root", entity.SplitHorizontal, leaf("l", "a"), leaf("r", "b")))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.RemoveWindow(ctx, ds, "l", "a"))
	require.NoError(t, uc.RemoveWindow(ctx, ds, "r", "b"))
	removed := uc.CoalesceEmptyPanels(ctx, ds)

	require.NoError(t, ds.Validate())
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, ds.Len())
	assert.True(t, ds.RootPanel().IsEmpty(), "root stays as an empty placeholder")
}

func TestManagePanels_CoalesceDropsEmptyFloating(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("root", "a"), leaf("f1", "x"), leaf("f2", "y"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	require.NoError(t, uc.RemoveWindow(ctx, ds, "f1", "x"))
	uc.CoalesceEmptyPanels(ctx, ds)

	require.NoError(t, ds.Validate())
	assert.Equal(t, []entity.PanelID{"f2"}, ds.Floating)
}

func TestManagePanels_Dock_Modes(t *testing.T) {
	tests := []struct {
		name      string
		mode      entity.DockMode
		wantSplit entity.SplitDirection
		wantOrder []entity.PanelID
	}{
		{"left", entity.DockLeft, entity.SplitHorizontal, []entity.PanelID{"f", "p0"}},
		{"right", entity.DockRight, entity.SplitHorizontal, []entity.PanelID{"p0", "f"}},
		{"top", entity.DockTop, entity.SplitVertical, []entity.PanelID{"f", "p0"}},
		{"bottom", entity.DockBottom, entity.SplitVertical, []entity.PanelID{"p0", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ds := buildDockspace(t, leaf("p0", "a"), leaf("f", "b"))
			uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

			require.NoError(t, uc.Dock(ctx, ds, "f", "p0", tt.mode))

			require.NoError(t, ds.Validate())
			root := ds.RootPanel()
			assert.Equal(t, entity.PanelID("s1"), root.ID)
			assert.Equal(t, tt.wantSplit, root.Split)
			assert.Equal(t, tt.wantOrder, root.Children)
			assert.Equal(t, entity.DefaultSplitSize, root.SplitSize)
			assert.Empty(t, ds.Floating)
			assert.False(t, ds.Panel("f").Floating)
			assert.Equal(t, entity.PanelID("f"), ds.Active)
		})
	}
}

func TestManagePanels_Dock_FullMergesTabs(t *testing.T) {
	ctx := testContext()
	float := leaf("f", "b", "c")
	float.Active = 1
	ds := buildDockspace(t, leaf("p0", "a"), float)
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	require.NoError(t, uc.Dock(ctx, ds, "f", "p0", entity.DockFull))

	require.NoError(t, ds.Validate())
	p0 := ds.Panel("p0")
	assert.Equal(t, []entity.ContentID{"a", "b", "c"}, p0.WindowIDs)
	assert.Equal(t, entity.ContentID("c"), p0.ActiveWindow(), "active tab follows the docked panel")
	assert.Nil(t, ds.Panel("f"))
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, entity.PanelID("p0"), ds.Active)
}

func TestManagePanels_Dock_FullIntoPlaceholder(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("root"), leaf("f", "a"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	require.NoError(t, uc.Dock(ctx, ds, "f", "root", entity.DockFull))

	require.NoError(t, ds.Validate())
	assert.Equal(t, []entity.ContentID{"a"}, ds.RootPanel().WindowIDs)
	assert.Empty(t, ds.Floating)
}

func TestManagePanels_Dock_RejectsCycles(t *testing.T) {
	tests := []struct {
		name   string
		source entity.PanelID
		target entity.PanelID
	}{
		{"source is target", "l", "l"},
		{"source is parent of target", "root", "l"},
		{"source is grandparent of target", "root", "rb"},
		{"inner split into own child", "r", "rt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ds := buildDockspace(t,
				split("root", entity.SplitHorizontal,
					leaf("l", "a"),
					split("r", entity.SplitVertical, leaf("rt", "b"), leaf("rb", "c")),
				),
			)
			uc := usecase.NewManagePanelsUseCase(seqIDs("s"))
			before := entity.SnapshotFromDockspace(ds)

			err := uc.Dock(ctx, ds, tt.source, tt.target, entity.DockLeft)

			assert.ErrorIs(t, err, usecase.ErrDockCycle)
			assert.Equal(t, before, entity.SnapshotFromDockspace(ds), "no state change")
		})
	}
}

func TestManagePanels_Dock_InvalidTargets(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t,
		split("root", entity.SplitHorizontal, leaf("l", "a"), leaf("r", "b")),
		leaf("f1", "x"), leaf("f2", "y"),
	)
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	assert.ErrorIs(t, uc.Dock(ctx, ds, "f1", "f2", entity.DockLeft), usecase.ErrInvalidTarget)
	assert.ErrorIs(t, uc.Dock(ctx, ds, "f1", "root", entity.DockFull), usecase.ErrInvalidTarget)
	assert.ErrorIs(t, uc.Dock(ctx, ds, "ghost", "l", entity.DockLeft), usecase.ErrPanelNotFound)
	assert.ErrorIs(t, uc.Dock(ctx, ds, "f1", "ghost", entity.DockLeft), usecase.ErrPanelNotFound)
	require.NoError(t, ds.Validate())
}

func TestManagePanels_Dock_DockedPanelMovesAcross(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t,
		split("root", entity.SplitHorizontal,
			leaf("l", "a"),
			split("r", entity.SplitVertical, leaf("rt", "b"), leaf("rb", "c")),
		),
	)
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	// Move the bottom-right panel below the left one.
	require.NoError(t, uc.Dock(ctx, ds, "rb", "l", entity.DockBottom))

	require.NoError(t, ds.Validate())
	root := ds.RootPanel()
	require.Equal(t, []entity.PanelID{"s1", "rt"}, root.Children)
	assert.Equal(t, []entity.PanelID{"l", "rb"}, ds.Panel("s1").Children)
	assert.Nil(t, ds.Panel("r"), "the vacated split is spliced out")
}

func TestManagePanels_Dock_OntoOwnParentSplit(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, split("root", entity.SplitHorizontal, leaf("l", "a"), leaf("r", "b")))
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	// Docking "l" along the right edge of the whole workspace.
	require.NoError(t, uc.Dock(ctx, ds, "l", "root", entity.DockRight))

	require.NoError(t, ds.Validate())
	root := ds.RootPanel()
	assert.Equal(t, entity.PanelID("s1"), root.ID)
	assert.Equal(t, []entity.PanelID{"r", "l"}, root.Children)
}

func TestManagePanels_ClosePanel(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t,
		split("root", entity.SplitHorizontal, leaf("l", "a"), leaf("r", "b", "c")),
		leaf("f", "x"),
	)
	uc := usecase.NewManagePanelsUseCase(seqIDs("s"))

	require.NoError(t, uc.ClosePanel(ctx, ds, "f"))
	require.NoError(t, uc.ClosePanel(ctx, ds, "r"))

	require.NoError(t, ds.Validate())
	assert.Empty(t, ds.Floating)
	assert.Equal(t, entity.PanelID("l"), ds.Root)
	assert.ErrorIs(t, uc.ClosePanel(ctx, ds, "r"), usecase.ErrPanelNotFound)
}

// TestManagePanels_NoEmptyLeavesProperty runs random edit sequences and
// checks the tree stays valid with no empty docked leaf.
func TestManagePanels_NoEmptyLeavesProperty(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			ctx := testContext()
			rng := rand.New(rand.NewPCG(seed, 7))
			ds := entity.NewDockspace("root")
			uc := usecase.NewManagePanelsUseCase(seqIDs("p"))
			floating := usecase.NewManageFloatingUseCase(uc, usecase.DefaultFloatingOptions())
			modes := []entity.DockMode{entity.DockFull, entity.DockLeft, entity.DockRight, entity.DockTop, entity.DockBottom}

			for step := range 60 {
				leaves := ds.Leaves()
				switch rng.IntN(4) {
				case 0:
					p := leaves[rng.IntN(len(leaves))]
					require.NoError(t, uc.AddWindow(ctx, ds, p.ID, entity.ContentID(fmt.Sprintf("c%d", step))))
				case 1:
					p := leaves[rng.IntN(len(leaves))]
					if len(p.WindowIDs) > 0 {
						require.NoError(t, uc.RemoveWindow(ctx, ds, p.ID, p.WindowIDs[rng.IntN(len(p.WindowIDs))]))
						uc.CoalesceEmptyPanels(ctx, ds)
					}
				case 2:
					f, err := floating.Open(ctx, ds, []entity.ContentID{entity.ContentID(fmt.Sprintf("f%d", step))}, usecase.OpenOptions{})
					require.NoError(t, err)
					target := leaves[rng.IntN(len(leaves))]
					err = uc.Dock(ctx, ds, f.ID, target.ID, modes[rng.IntN(len(modes))])
					require.NoError(t, err)
				case 3:
					a := leaves[rng.IntN(len(leaves))]
					b := leaves[rng.IntN(len(leaves))]
					err := uc.Dock(ctx, ds, a.ID, b.ID, modes[1+rng.IntN(4)])
					if a.ID == b.ID || a.IsEmpty() {
						continue
					}
					require.NoError(t, err)
				}

				require.NoError(t, ds.Validate(), "step %d", step)
				for _, l := range ds.Leaves() {
					if l.ID != ds.Root {
						assert.NotEmpty(t, l.WindowIDs, "step %d: empty leaf %q", step, l.ID)
					}
				}
			}
		})
	}
}

func TestManagePanels_Extract(t *testing.T) {
	tests := []struct {
		name       string
		index      int
		wantTabs   []entity.ContentID
		wantActive int
		wantSource []entity.ContentID
		wantSize   entity.Size
	}{
		{"single tab", 1, []entity.ContentID{"b"}, 0, []entity.ContentID{"a", "c"}, entity.Size{}},
		{"whole panel", -1, []entity.ContentID{"a", "b", "c"}, 2, nil, entity.Size{W: 320, H: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := testContext()
			src := leaf("r", "a", "b", "c")
			src.Titles = []string{"A", "B", "C"}
			src.Active = 2
			ds := buildDockspace(t, split("root", entity.SplitHorizontal, leaf("l", "x"), src))
			// Reported by the active tab "c": it only speaks for a whole-panel move.
			ds.Panel("r").PreferredFloatingSize = entity.Size{W: 320, H: 240}
			uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

			// Act
			p, err := uc.Extract(ctx, ds, "r", tt.index)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantTabs, p.WindowIDs)
			assert.Len(t, p.WindowTitles, len(tt.wantTabs))
			assert.Equal(t, tt.wantActive, p.CurWindowIndex)
			assert.Equal(t, tt.wantSize, p.PreferredFloatingSize)
			if tt.wantSource == nil {
				assert.Nil(t, ds.Panel("r"), "emptied source is coalesced away")
				assert.Equal(t, entity.PanelID("l"), ds.Root)
			} else {
				assert.Equal(t, tt.wantSource, ds.Panel("r").WindowIDs)
			}
		})
	}
}

func TestManagePanels_Extract_KeepsTitles(t *testing.T) {
	ctx := testContext()
	src := leaf("root", "a", "b")
	src.Titles = []string{"Alpha", "Beta"}
	ds := buildDockspace(t, src)
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	p, err := uc.Extract(ctx, ds, "root", 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, p.WindowTitles)
	assert.Equal(t, []string{"Alpha"}, ds.Panel("root").WindowTitles)
}

func TestManagePanels_Extract_Errors(t *testing.T) {
	ctx := testContext()
	ds := buildDockspace(t, leaf("root", "a"))
	uc := usecase.NewManagePanelsUseCase(seqIDs("n"))

	_, err := uc.Extract(ctx, ds, "missing", -1)
	assert.ErrorIs(t, err, usecase.ErrPanelNotFound)

	_, err = uc.Extract(ctx, ds, "root", 4)
	assert.ErrorIs(t, err, usecase.ErrInvalidTarget)

	empty := entity.NewDockspace("root")
	_, err = uc.Extract(ctx, empty, "root", -1)
	assert.ErrorIs(t, err, usecase.ErrNoContent)
	assert.Equal(t, 1, ds.Len())
}

func TestManagePanels_SetWindowTitle(t *testing.T) {
	ds := buildDockspace(t, leaf("root", "a", "b"))
	uc := usecase.NewManagePanelsUseCase(nil)

	assert.True(t, uc.SetWindowTitle(ds, "root", "b", "Settings"))
	assert.False(t, uc.SetWindowTitle(ds, "root", "b", "Settings"), "unchanged title")
	assert.False(t, uc.SetWindowTitle(ds, "root", "zz", "Nope"))
	assert.False(t, uc.SetWindowTitle(ds, "gone", "a", "Nope"))
	assert.Equal(t, "Settings", ds.Panel("root").WindowTitles[1])
}

func TestManagePanels_SetPreferredSize(t *testing.T) {
	ds := buildDockspace(t, leaf("root", "a", "b"))
	uc := usecase.NewManagePanelsUseCase(nil)
	size := entity.Size{W: 300, H: 200}

	assert.False(t, uc.SetPreferredSize(ds, "root", "b", size), "inactive tab is ignored")
	assert.True(t, uc.SetPreferredSize(ds, "root", "a", size))
	assert.False(t, uc.SetPreferredSize(ds, "root", "a", size), "unchanged size")
	assert.Equal(t, size, ds.Panel("root").PreferredFloatingSize)
}
