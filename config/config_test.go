package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spacejam/parameter"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, parameter.FrameRate, cfg.FPS)
	assert.Equal(t, parameter.LogDir, cfg.LogDir)
	assert.Equal(t, 4000.0, cfg.Missile.Distance)
	assert.Equal(t, 150.0, cfg.Missile.SpawnOffset)
	assert.Equal(t, 2*time.Second, cfg.Missile.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.Weapon.ReloadTime)
	assert.Equal(t, 1, cfg.Weapon.BayCapacity)
	assert.Equal(t, 25.0, cfg.Ship.MoveRate)
	assert.Equal(t, 1.25, cfg.Ship.TurnRate)
	assert.Equal(t, 89.0, cfg.Ship.PitchLimit)
	assert.Equal(t, parameter.MaxPlacementAttempts, cfg.Placement.MaxAttempts)
	assert.Empty(t, cfg.File)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	data := `
fps = 30
seed = 42

[missile]
distance = 5000.0
duration = "3s"

[weapon]
reloadTime = "500ms"
autoReload = true

[keys]
x = "f"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", path}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 5000.0, cfg.Missile.Distance)
	assert.Equal(t, 3*time.Second, cfg.Missile.Duration)
	assert.Equal(t, 150.0, cfg.Missile.SpawnOffset)
	assert.Equal(t, 500*time.Millisecond, cfg.Weapon.ReloadTime)
	assert.True(t, cfg.Weapon.AutoReload)
	assert.Equal(t, map[string]string{"x": "f"}, cfg.Keys)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spacejam.toml")
	require.NoError(t, os.WriteFile(path, []byte("fps = 30\nmute = false\n"), 0644))
	t.Chdir(dir)

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--fps", "120", "--mute", "--debug", "--seed", "7"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.FPS)
	assert.True(t, cfg.Mute)
	assert.True(t, cfg.Debug)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "spacejam.toml", filepath.Base(cfg.File))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--config", "/nonexistent/spacejam.toml"}))

	_, err := Load(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ship]\npitchLimit = 90.0\n"), 0644))

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"-c", path}))

	_, err := Load(fs)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultMatchesLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestValidate(t *testing.T) {
	base := Default()

	cases := map[string]func(c *Config){
		"fps":           func(c *Config) { c.FPS = 0 },
		"distance":      func(c *Config) { c.Missile.Distance = -1 },
		"spawn offset":  func(c *Config) { c.Missile.SpawnOffset = c.Missile.Distance },
		"duration":      func(c *Config) { c.Missile.Duration = 0 },
		"radius":        func(c *Config) { c.Missile.ColliderRadius = 0 },
		"reload":        func(c *Config) { c.Weapon.ReloadTime = -time.Second },
		"bay":           func(c *Config) { c.Weapon.BayCapacity = 0 },
		"move rate":     func(c *Config) { c.Ship.MoveRate = 0 },
		"pitch":         func(c *Config) { c.Ship.PitchLimit = 95 },
		"pitch past 89": func(c *Config) { c.Ship.PitchLimit = 89.5 },
		"pitch zero":    func(c *Config) { c.Ship.PitchLimit = 0 },
		"attempts":      func(c *Config) { c.Placement.MaxAttempts = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := *base
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, base.Validate())

	tighter := *base
	tighter.Ship.PitchLimit = 45
	assert.NoError(t, tighter.Validate())
}
