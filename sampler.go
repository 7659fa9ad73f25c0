package particleglobe

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrCapacityExceeded is returned by a strict graticule sampler when its
// rings would produce more points than the cloud can hold.
var ErrCapacityExceeded = errors.New("graticule exceeds point capacity")

// PointCloud is a flat xyz buffer, three float32 values per point.
type PointCloud struct {
	positions []float32
}

func NewPointCloud(positions []float32) PointCloud {
	p := make([]float32, len(positions))
	copy(p, positions)
	return PointCloud{positions: p}
}

func (pc PointCloud) Len() int {
	return len(pc.positions) / 3
}

// At returns the coordinates of point i.
func (pc PointCloud) At(i int) (x, y, z float32) {
	j := i * 3
	return pc.positions[j], pc.positions[j+1], pc.positions[j+2]
}

// Positions returns a copy of the underlying buffer.
func (pc PointCloud) Positions() []float32 {
	out := make([]float32, len(pc.positions))
	copy(out, pc.positions)
	return out
}

// Sampler produces the points of a sphere of the given radius.
type Sampler interface {
	Sample(n int, radius float64) (PointCloud, error)
}

type SamplerKind string

const (
	SamplerUniform   SamplerKind = "uniform"
	SamplerGraticule SamplerKind = "graticule"
)

// NewSampler picks the strategy named in the config.
func NewSampler(cfg Config) (Sampler, error) {
	switch cfg.Sampler {
	case SamplerUniform, "":
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewUniformSampler(rand.New(rand.NewSource(seed))), nil
	case SamplerGraticule:
		return &GraticuleSampler{
			LatStep:       cfg.Graticule.LatStep,
			LonStep:       cfg.Graticule.LonStep,
			PointsPerRing: cfg.Graticule.PointsPerRing,
			Strict:        cfg.Graticule.Strict,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown sampler %q", ErrInvalidConfig, cfg.Sampler)
	}
}

// sphericalToCartesian uses phi as inclination from +z and theta as azimuth.
func sphericalToCartesian(radius, phi, theta float64) (x, y, z float64) {
	sinPhi := math.Sin(phi)
	x = radius * sinPhi * math.Cos(theta)
	y = radius * sinPhi * math.Sin(theta)
	z = radius * math.Cos(phi)
	return x, y, z
}

// UniformSampler scatters points with uniform area density.
type UniformSampler struct {
	rng *rand.Rand
}

func NewUniformSampler(rng *rand.Rand) *UniformSampler {
	return &UniformSampler{rng: rng}
}

func (s *UniformSampler) Sample(n int, radius float64) (PointCloud, error) {
	positions := make([]float32, n*3)
	for i := 0; i < n; i++ {
		// acos(2u-1) rather than u*pi, otherwise the poles bunch up
		phi := math.Acos(2*s.rng.Float64() - 1)
		theta := s.rng.Float64() * 2 * math.Pi

		x, y, z := sphericalToCartesian(radius, phi, theta)
		positions[i*3] = float32(x)
		positions[i*3+1] = float32(y)
		positions[i*3+2] = float32(z)
	}
	return PointCloud{positions: positions}, nil
}

// GraticuleSampler lays points along latitude rings followed by longitude
// rings. Points past capacity are dropped unless Strict is set.
type GraticuleSampler struct {
	LatStep       float64 // degrees
	LonStep       float64 // degrees
	PointsPerRing int
	Strict        bool
}

func (s *GraticuleSampler) latitudes() []float64 {
	var lats []float64
	// integer stepping so -90 + k*step lands exactly on +90
	steps := int(math.Floor(180/s.LatStep + 1e-9))
	for k := 0; k <= steps; k++ {
		lats = append(lats, -90+float64(k)*s.LatStep)
	}
	return lats
}

func (s *GraticuleSampler) longitudes() []float64 {
	var lons []float64
	for k := 0; float64(k)*s.LonStep < 360-1e-9; k++ {
		lons = append(lons, float64(k)*s.LonStep)
	}
	return lons
}

// Requested is the number of points the rings would produce without clipping.
func (s *GraticuleSampler) Requested() int {
	return (len(s.latitudes()) + len(s.longitudes())) * s.PointsPerRing
}

func (s *GraticuleSampler) Sample(n int, radius float64) (PointCloud, error) {
	if s.Strict {
		if req := s.Requested(); req > n {
			return PointCloud{}, fmt.Errorf("%w: %d points requested, capacity %d", ErrCapacityExceeded, req, n)
		}
	}

	positions := make([]float32, n*3)
	idx := 0
	put := func(phi, theta float64) {
		if idx >= n {
			return
		}
		x, y, z := sphericalToCartesian(radius, phi, theta)
		positions[idx*3] = float32(x)
		positions[idx*3+1] = float32(y)
		positions[idx*3+2] = float32(z)
		idx++
	}

	for _, lat := range s.latitudes() {
		phi := degreesToRadians(90 - lat)
		for j := 0; j < s.PointsPerRing; j++ {
			theta := 2 * math.Pi * float64(j) / float64(s.PointsPerRing)
			put(phi, theta)
		}
	}

	for _, lon := range s.longitudes() {
		theta := degreesToRadians(lon)
		for j := 0; j < s.PointsPerRing; j++ {
			var phi float64
			if s.PointsPerRing > 1 {
				phi = math.Pi * float64(j) / float64(s.PointsPerRing-1)
			}
			put(phi, theta)
		}
	}

	// unfilled slots sit on the north pole, never at the origin
	for ; idx < n; idx++ {
		positions[idx*3+2] = float32(radius)
	}

	return PointCloud{positions: positions}, nil
}
