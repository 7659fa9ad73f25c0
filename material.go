package particleglobe

import (
	"image/color"

	"github.com/aquilax/go-perlin"
)

// Material is the look of every point in the cloud.
type Material struct {
	Color       color.RGBA
	Size        float64 // world units, attenuated with depth
	Opacity     float64
	Transparent bool
	// Twinkle in [0,1] is how far noise may dim a point. Zero disables it.
	Twinkle float64

	noise *perlin.Perlin
}

func NewMaterial(clr color.RGBA, size, opacity float64, transparent bool, twinkle float64, seed int64) Material {
	m := Material{
		Color:       clr,
		Size:        size,
		Opacity:     opacity,
		Transparent: transparent,
		Twinkle:     twinkle,
	}
	if twinkle > 0 {
		m.noise = perlin.NewPerlin(2, 2, 3, seed)
	}
	return m
}

// Alpha returns the opacity of point i at tick t.
func (m Material) Alpha(i int, t float64) float64 {
	a := 1.0
	if m.Transparent {
		a = m.Opacity
	}
	if m.noise == nil || m.Twinkle <= 0 {
		return a
	}
	// Noise2D is roughly in [-1,1]
	n := (m.noise.Noise2D(float64(i)*0.173, t*0.02) + 1) / 2
	return a * (1 - m.Twinkle*clamp(n, 0, 1))
}
