package particleglobe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.PointCount())

	cfg.Sampler = SamplerGraticule
	assert.Equal(t, 2500, cfg.PointCount())

	cfg.Count = 300
	assert.Equal(t, 300, cfg.PointCount())
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.json")
	data := `{"sampler": "graticule", "bloom": {"strength": 2, "radius": 0.4, "threshold": 0.85, "mips": 3}, "material": {"color": "#ff8000", "size": 0.05, "opacity": 0.7, "transparent": true}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SamplerGraticule, cfg.Sampler)
	assert.Equal(t, 2.0, cfg.Bloom.Strength)
	assert.Equal(t, 3, cfg.Bloom.Mips)
	assert.Equal(t, 5.0, cfg.Radius)
	assert.Equal(t, 0.5, cfg.MoveScale)
	assert.Equal(t, 50, cfg.Graticule.PointsPerRing)

	clr, err := cfg.Material.RGBA()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), clr.R)
	assert.Equal(t, uint8(0x80), clr.G)
	assert.Equal(t, uint8(0), clr.B)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestResolveFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve(Flags{Backend: BackendTerminal, Sampler: "graticule", Count: 3050, Strict: true, Width: 1024, Seed: 9})

	assert.Equal(t, BackendTerminal, cfg.Backend)
	assert.Equal(t, SamplerGraticule, cfg.Sampler)
	assert.Equal(t, 3050, cfg.Count)
	assert.True(t, cfg.Graticule.Strict)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Backend = "vr" }},
		{"sampler", func(c *Config) { c.Sampler = "cube" }},
		{"count", func(c *Config) { c.Count = -1 }},
		{"radius", func(c *Config) { c.Radius = 0 }},
		{"ring steps", func(c *Config) { c.Sampler = SamplerGraticule; c.Graticule.LatStep = 0 }},
		{"ring points", func(c *Config) { c.Sampler = SamplerGraticule; c.Graticule.PointsPerRing = 0 }},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"clip", func(c *Config) { c.Camera.Far = 0.01 }},
		{"color", func(c *Config) { c.Material.Color = "white" }},
		{"opacity", func(c *Config) { c.Material.Opacity = 1.5 }},
		{"twinkle", func(c *Config) { c.Material.Twinkle = -1 }},
		{"bloom", func(c *Config) { c.Bloom.Radius = 2 }},
		{"mips", func(c *Config) { c.Bloom.Mips = 6 }},
		{"viewport", func(c *Config) { c.Width = 0 }},
		{"tps", func(c *Config) { c.TPS = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.Radius = -1
	cfg.Width = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius")
	assert.Contains(t, err.Error(), "viewport")
}
