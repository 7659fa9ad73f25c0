package particleglobe

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	BackendDisplay  = "display"
	BackendTerminal = "terminal"

	defaultUniformCount   = 1000
	defaultGraticuleCount = 2500
)

type GraticuleConfig struct {
	LatStep       float64 `json:"lat_step"`
	LonStep       float64 `json:"lon_step"`
	PointsPerRing int     `json:"points_per_ring"`
	// Strict turns clipped rings into ErrCapacityExceeded.
	Strict bool `json:"strict"`
}

type CameraConfig struct {
	FOV      float64 `json:"fov"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
	Distance float64 `json:"distance"`
}

type MaterialConfig struct {
	Color       string  `json:"color"`
	Size        float64 `json:"size"`
	Opacity     float64 `json:"opacity"`
	Transparent bool    `json:"transparent"`
	Twinkle     float64 `json:"twinkle"`
}

// RGBA parses Color as #rrggbb.
func (m MaterialConfig) RGBA() (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(m.Color, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: material color %q: %v", ErrInvalidConfig, m.Color, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Config holds the scene and backend settings.
type Config struct {
	Backend string      `json:"backend"`
	Sampler SamplerKind `json:"sampler"`
	// Count of zero picks the sampler's default capacity.
	Count     int             `json:"count"`
	Radius    float64         `json:"radius"`
	Seed      int64           `json:"seed"`
	Graticule GraticuleConfig `json:"graticule"`

	MoveScale    float64 `json:"move_scale"`
	RotationStep float64 `json:"rotation_step"`

	Camera   CameraConfig   `json:"camera"`
	Material MaterialConfig `json:"material"`
	Bloom    BloomConfig    `json:"bloom"`

	Width  int  `json:"width"`
	Height int  `json:"height"`
	TPS    int  `json:"tps"`
	Debug  bool `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendDisplay,
		Sampler: SamplerUniform,
		Radius:  5,
		Graticule: GraticuleConfig{
			LatStep:       5,
			LonStep:       15,
			PointsPerRing: 50,
		},
		MoveScale:    0.5,
		RotationStep: 0.001,
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Distance: 10,
		},
		Material: MaterialConfig{
			Color:       "#ffffff",
			Size:        0.02,
			Opacity:     1,
			Transparent: true,
		},
		Bloom: BloomConfig{
			Strength:  1.5,
			Radius:    0.4,
			Threshold: 0.85,
			Mips:      5,
		},
		Width:  800,
		Height: 600,
		TPS:    60,
	}
}

// Load reads a JSON config file over the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags are the command line overrides. Zero values leave the config alone.
type Flags struct {
	ConfigPath string
	Backend    string
	Sampler    string
	Count      int
	Seed       int64
	Strict     bool
	Width      int
	Height     int
	Debug      bool
}

// Resolve applies CLI flags on top of the loaded config.
func (c *Config) Resolve(flags Flags) {
	if flags.Backend != "" {
		c.Backend = flags.Backend
	}
	if flags.Sampler != "" {
		c.Sampler = SamplerKind(flags.Sampler)
	}
	if flags.Count > 0 {
		c.Count = flags.Count
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Strict {
		c.Graticule.Strict = true
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Debug {
		c.Debug = true
	}
}

// PointCount is the cloud capacity after defaults.
func (c Config) PointCount() int {
	if c.Count > 0 {
		return c.Count
	}
	if c.Sampler == SamplerGraticule {
		return defaultGraticuleCount
	}
	return defaultUniformCount
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Backend {
	case BackendDisplay, BackendTerminal:
	default:
		bad("unknown backend %q", c.Backend)
	}
	switch c.Sampler {
	case SamplerUniform, SamplerGraticule:
	default:
		bad("unknown sampler %q", c.Sampler)
	}
	if c.Count < 0 {
		bad("count %d is negative", c.Count)
	}
	if c.Radius <= 0 {
		bad("radius %g must be positive", c.Radius)
	}
	if c.Sampler == SamplerGraticule {
		if c.Graticule.LatStep <= 0 || c.Graticule.LonStep <= 0 {
			bad("graticule steps must be positive")
		}
		if c.Graticule.PointsPerRing <= 0 {
			bad("points per ring %d must be positive", c.Graticule.PointsPerRing)
		}
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera fov %g out of range", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera clip range %g..%g", c.Camera.Near, c.Camera.Far)
	}
	if _, err := c.Material.RGBA(); err != nil {
		errs = append(errs, err)
	}
	if c.Material.Opacity < 0 || c.Material.Opacity > 1 {
		bad("opacity %g outside [0,1]", c.Material.Opacity)
	}
	if c.Material.Twinkle < 0 || c.Material.Twinkle > 1 {
		bad("twinkle %g outside [0,1]", c.Material.Twinkle)
	}
	if c.Bloom.Strength < 0 || c.Bloom.Radius < 0 || c.Bloom.Radius > 1 {
		bad("bloom strength %g radius %g", c.Bloom.Strength, c.Bloom.Radius)
	}
	if c.Bloom.Mips < 0 || c.Bloom.Mips > maxBloomMips {
		bad("bloom mips %d outside [0,%d]", c.Bloom.Mips, maxBloomMips)
	}
	if c.Width <= 0 || c.Height <= 0 {
		bad("viewport %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		bad("tps %d must be positive", c.TPS)
	}
	return errors.Join(errs...)
}
