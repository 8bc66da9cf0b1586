package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockable/internal/domain/entity"
)

// execute runs the root command against throwaway XDG directories.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSchemaCommand(t *testing.T) {
	schemaOutput = ""

	assert.Contains(t, execute(t, "schema"), "drag_threshold")
	assert.Contains(t, execute(t, "schema", "layout"), "split_size")
}

func TestSchemaCommand_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.schema.json")
	t.Cleanup(func() { schemaOutput = "" })

	execute(t, "schema", "layout", "--output", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "split_size")
}

func TestResolveCommand(t *testing.T) {
	// Arrange
	layoutFile := filepath.Join(t.TempDir(), "layout.json")
	snapshot := `{"version":1,"root":{"id":"root","split":"horizontal","split_size":0.5,
		"children":[{"id":"l","windows":["a"]},{"id":"r","windows":["b"]}]}}`
	require.NoError(t, os.WriteFile(layoutFile, []byte(snapshot), 0o644))

	// Act
	out := execute(t, "resolve", "--width", "406", "--height", "300", layoutFile)

	// Assert
	var layout entity.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	left, ok := layout.RectOf("l")
	require.True(t, ok)
	assert.Equal(t, entity.NewRect(0, 0, 200, 300), left)
	require.Len(t, layout.Dividers, 1)
	assert.Equal(t, entity.PanelID("root"), layout.Dividers[0].Panel)
}

func TestConfigShowCommand(t *testing.T) {
	out := execute(t, "config", "show")

	assert.Contains(t, out, "[interaction]")
	assert.Contains(t, out, "divider_size = 6.0")
}
