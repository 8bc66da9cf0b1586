package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/ui/dock"
)

// DecodeSnapshot reads a JSON layout snapshot.
func DecodeSnapshot(r io.Reader) (*entity.LayoutSnapshot, error) {
	var snap entity.LayoutSnapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidSnapshot, err)
	}
	if snap.Version == 0 {
		snap.Version = entity.LayoutSnapshotVersion
	}
	return &snap, nil
}

// LoadSnapshotFile reads a layout snapshot from path, or stdin for "-".
func LoadSnapshotFile(path string) (*entity.LayoutSnapshot, error) {
	if path == "-" {
		return DecodeSnapshot(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// ResolveSnapshot resolves snap for a container of the given size, the
// clamp pass of floating panels included.
func ResolveSnapshot(ctx context.Context, snap *entity.LayoutSnapshot, width, height float64, settings dock.Settings) (*entity.Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid container size %gx%g", width, height)
	}
	engine := dock.NewEngine(ctx, dock.EngineConfig{Settings: settings})
	if err := engine.LoadSnapshot(snap); err != nil {
		return nil, err
	}
	engine.SetBounds(entity.NewRect(0, 0, width, height))
	return engine.Layout(), nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
