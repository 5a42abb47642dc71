package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
window:
  width: 1280
  height: 720
lights:
  max_simple: 4
  max_cube: 6
render:
  ambient_factor: 0.1
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Lights.MaxSimple)
	assert.Equal(t, 6, cfg.Lights.MaxCube)
	assert.Equal(t, float32(0.1), cfg.Render.AmbientFactor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "assets/shaders", cfg.Shaders.Dir)
	assert.Equal(t, 16, cfg.Render.AttributeSlots)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Shadows.MapSize = 2048
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateRejectsTextureUnitOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lights.MaxSimple = 10
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Render.AttributeSlots = 2
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [not, a, map]"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())
	defer SetAmbientFactor(GetAmbientFactor())

	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())

	SetAmbientFactor(2)
	assert.Equal(t, float32(1), GetAmbientFactor())

	cfg := DefaultConfig()
	cfg.Window.FPSLimit = 144
	cfg.Render.AmbientFactor = 0.5
	Apply(cfg)
	assert.Equal(t, 144, GetFPSLimit())
	assert.Equal(t, float32(0.5), GetAmbientFactor())
}

func TestLoadSceneAndDebugSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
scene:
  cube_texture: textures/crate.bmp
debug:
  overlay: true
  interval: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "textures/crate.bmp", cfg.Scene.CubeTexture)
	assert.Empty(t, cfg.Scene.GroundTexture)
	assert.True(t, cfg.Debug.Overlay)
	assert.Equal(t, 2.5, cfg.Debug.Interval)
}

func TestValidateRejectsZeroOverlayInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug.Interval = 0
	assert.NoError(t, cfg.Validate(), "interval only matters with the overlay on")

	cfg.Debug.Overlay = true
	assert.Error(t, cfg.Validate())
}
