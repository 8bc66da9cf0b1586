package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, 6.0, mgr.viper.GetFloat64("layout.divider_size"))
	assert.True(t, mgr.viper.GetBool("layout.root_anchors"))
	assert.Equal(t, 10.0, mgr.viper.GetFloat64("interaction.drag_threshold"))
	assert.Equal(t, "#4A90E2", mgr.viper.GetString("demo.theme.active_border"))
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " DEBUG "
	cfg.Logging.Format = ""
	cfg.Interaction.HeaderHeight = 30
	cfg.Interaction.MinFloatingHeight = 0

	normalizeConfig(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, defaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, 30.0, cfg.Interaction.MinFloatingHeight)
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)

	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, configFileName))
	assert.Equal(t, filepath.Join(dir, configFileName), mgr.GetConfigFile())

	cfg := mgr.Get()
	want := DefaultConfig()
	assert.Equal(t, want.Layout, cfg.Layout)
	assert.Equal(t, want.Interaction, cfg.Interaction)
	assert.Equal(t, want.Demo, cfg.Demo)
}

func TestManager_LoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "[interaction]\ndrag_threshold = 4.0\n\n[layout]\nroot_anchors = false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), filePerm))

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 4.0, cfg.Interaction.DragThreshold)
	assert.False(t, cfg.Layout.RootAnchors)
	assert.Equal(t, defaultCaptureRadius, cfg.Interaction.CaptureRadius, "unset keys keep defaults")
}

func TestManager_EnvOverrides(t *testing.T) {
	t.Setenv("DOCKABLE_LAYOUT_DIVIDER_SIZE", "2")
	t.Setenv("DOCKABLE_LOG_LEVEL", "debug")

	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 2.0, cfg.Layout.DividerSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	content := "[interaction]\ndrag_threshold = -1.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), filePerm))

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interaction.drag_threshold")
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Layout, mgr.Get().Layout)
}

func TestManager_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Interaction.CaptureRadius = 80
	cfg.Demo.Theme.Anchor = "#FF0000"
	require.NoError(t, mgr.Save(cfg))
	assert.Equal(t, 80.0, mgr.Get().Interaction.CaptureRadius)

	other, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, other.Load())
	assert.Equal(t, 80.0, other.Get().Interaction.CaptureRadius)
	assert.Equal(t, "#FF0000", other.Get().Demo.Theme.Anchor)
}

func TestManager_SaveRejectsInvalid(t *testing.T) {
	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Demo.Theme.Tab = "blue"

	assert.Error(t, mgr.Save(cfg))
	assert.Error(t, mgr.Save(nil))
}

func TestManager_WatchReloadsOnExternalChange(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	changed := make(chan *Config, 16)
	mgr.OnConfigChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch(), "second call is a no-op")

	cfg := DefaultConfig()
	cfg.Layout.DividerSize = 12
	require.NoError(t, WriteConfigOrdered(cfg, filepath.Join(dir, configFileName)))

	// A write may surface as several events; wait for the complete file.
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case got := <-changed:
			reloaded = got.Layout.DividerSize == 12
		case <-timeout:
			t.Fatal("no reload after the config file changed")
		}
	}
	assert.Equal(t, 12.0, mgr.Get().Layout.DividerSize)
}

func TestManager_WatchRequiresLoad(t *testing.T) {
	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, mgr.Watch())
}
