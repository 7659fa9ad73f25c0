package particleglobe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Frame is what a backend needs to draw one frame.
type Frame struct {
	Points      PointCloud
	Rotation    float64
	Translation Vector2
	Tick        uint64
}

// Session owns the mutable state of one running globe. It is not safe for
// concurrent use; every backend drives it from a single goroutine.
type Session struct {
	ID string

	points       PointCloud
	pipeline     *Pipeline
	mapper       PointerMapper
	rotationStep float64
	logger       Logger

	pointer     Vector2
	translation Vector2
	rotation    float64
	tick        uint64
}

func NewSession(points PointCloud, pipeline *Pipeline, mapper PointerMapper, rotationStep float64, logger Logger) *Session {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Session{
		ID:           uuid.NewString(),
		points:       points,
		pipeline:     pipeline,
		mapper:       mapper,
		rotationStep: rotationStep,
		logger:       logger,
	}
}

// NewSessionFromConfig samples the cloud and builds the pipeline.
func NewSessionFromConfig(cfg Config, logger Logger) (*Session, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sampler, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	n := cfg.PointCount()
	if g, ok := sampler.(*GraticuleSampler); ok && g.Requested() > n {
		logger.Warnf("graticule requests %d points, keeping the first %d", g.Requested(), n)
	}
	points, err := sampler.Sample(n, cfg.Radius)
	if err != nil {
		return nil, fmt.Errorf("sample %s sphere: %w", cfg.Sampler, err)
	}

	clr, err := cfg.Material.RGBA()
	if err != nil {
		return nil, err
	}
	material := NewMaterial(clr, cfg.Material.Size, cfg.Material.Opacity, cfg.Material.Transparent, cfg.Material.Twinkle, cfg.Seed)

	vp := Viewport{Width: cfg.Width, Height: cfg.Height}
	camera := NewCamera(cfg.Camera.FOV, float64(vp.Width)/float64(vp.Height), cfg.Camera.Near, cfg.Camera.Far,
		mgl64.Vec3{0, 0, cfg.Camera.Distance})
	pipeline := NewPipeline(camera, material, cfg.Bloom, vp)

	s := NewSession(points, pipeline, NewPointerMapper(cfg.MoveScale), cfg.RotationStep, logger)
	logger.Infof("session %s: %d %s points, radius %.2f", s.ID, points.Len(), cfg.Sampler, cfg.Radius)
	return s, nil
}

func (s *Session) Pipeline() *Pipeline {
	return s.pipeline
}

func (s *Session) Points() PointCloud {
	return s.points
}

// Pointer is the last normalised pointer position.
func (s *Session) Pointer() Vector2 {
	return s.pointer
}

func (s *Session) Translation() Vector2 {
	return s.translation
}

func (s *Session) Rotation() float64 {
	return s.rotation
}

// PointerMoved handles a pointer event in viewport pixels.
func (s *Session) PointerMoved(px, py float64) {
	s.pointer = s.mapper.Normalize(px, py, s.pipeline.Viewport())
	s.translation = s.mapper.Displacement(s.pointer)
}

func (s *Session) Resize(width, height int) {
	s.pipeline.Resize(width, height)
	vp := s.pipeline.Viewport()
	s.logger.Debugf("session %s: viewport %dx%d", s.ID, vp.Width, vp.Height)
}

// AdvanceFrame steps the rotation and returns the frame to draw.
func (s *Session) AdvanceFrame() Frame {
	s.rotation += s.rotationStep
	s.tick++
	return s.Frame()
}

// Frame returns the current state without advancing it.
func (s *Session) Frame() Frame {
	return Frame{
		Points:      s.points,
		Rotation:    s.rotation,
		Translation: s.translation,
		Tick:        s.tick,
	}
}
