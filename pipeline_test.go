package particleglobe

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(w, h int) *Pipeline {
	cam := NewCamera(75, float64(w)/float64(h), 0.1, 1000, mgl64.Vec3{0, 0, 10})
	mat := NewMaterial(color.RGBA{255, 255, 255, 255}, 0.02, 1, true, 0, 1)
	bloom := BloomConfig{Strength: 1.5, Radius: 0.4, Threshold: 0.85, Mips: 5}
	return NewPipeline(cam, mat, bloom, Viewport{Width: w, Height: h})
}

func frameOf(rotation float64, translation Vector2, pts ...float32) Frame {
	return Frame{Points: NewPointCloud(pts), Rotation: rotation, Translation: translation}
}

func TestProjectOriginToCentre(t *testing.T) {
	p := newTestPipeline(800, 600)
	sprites := p.Project(frameOf(0, Vector2{}, 0, 0, 0), nil)
	require.Len(t, sprites, 1)

	s := sprites[0]
	assert.InDelta(t, 400, float64(s.X), 1e-3)
	assert.InDelta(t, 300, float64(s.Y), 1e-3)
	assert.InDelta(t, 10, s.Depth, 1e-9)
	// 0.02 * 300 / 10 is below a pixel
	assert.Equal(t, float32(1), s.Size)
	assert.Equal(t, float32(1), s.Alpha)
}

func TestProjectSkipsPointsBehindCamera(t *testing.T) {
	p := newTestPipeline(800, 600)
	sprites := p.Project(frameOf(0, Vector2{}, 0, 0, 20, 0, 0, 9.95, 0, 0, -5), nil)
	require.Len(t, sprites, 1)
	assert.InDelta(t, 15, sprites[0].Depth, 1e-9)
}

func TestProjectAppliesRotationAndTranslation(t *testing.T) {
	p := newTestPipeline(800, 600)

	// a quarter turn about y carries +x onto -z
	sprites := p.Project(frameOf(math.Pi/2, Vector2{}, 5, 0, 0), nil)
	require.Len(t, sprites, 1)
	assert.InDelta(t, 400, float64(sprites[0].X), 1e-3)
	assert.InDelta(t, 15, sprites[0].Depth, 1e-9)

	// positive x translation moves right, positive y moves up
	sprites = p.Project(frameOf(0, Vector2{X: 0.5, Y: 0.5}, 0, 0, 0), nil)
	require.Len(t, sprites, 1)
	halfHeight := math.Tan(degreesToRadians(37.5)) * 10
	wantX := 400 + 0.5/(halfHeight*800.0/600.0)*400
	wantY := 300 - 0.5/halfHeight*300
	assert.InDelta(t, wantX, float64(sprites[0].X), 1e-3)
	assert.InDelta(t, wantY, float64(sprites[0].Y), 1e-3)
}

func TestProjectSizeAttenuation(t *testing.T) {
	p := newTestPipeline(800, 600)
	p.Material.Size = 0.5
	sprites := p.Project(frameOf(0, Vector2{}, 0, 0, 0, 0, 0, 5), nil)
	require.Len(t, sprites, 2)
	assert.InDelta(t, 0.5*300/10, float64(sprites[0].Size), 1e-4)
	assert.InDelta(t, 0.5*300/5, float64(sprites[1].Size), 1e-4)
}

func TestResizeIsIdempotent(t *testing.T) {
	once := newTestPipeline(800, 600)
	once.Resize(1024, 768)

	twice := newTestPipeline(800, 600)
	twice.Resize(1024, 768)
	twice.Resize(1024, 768)

	assert.Equal(t, once.Camera.Aspect(), twice.Camera.Aspect())
	assert.Equal(t, once.Camera.ProjectionMatrix(), twice.Camera.ProjectionMatrix())
	assert.Equal(t, once.TargetSize(), twice.TargetSize())
	assert.Equal(t, once.BloomSizes(), twice.BloomSizes())
	assert.InDelta(t, 1024.0/768.0, twice.Camera.Aspect(), 1e-12)
}

func TestResizeUpdatesEverythingTogether(t *testing.T) {
	p := newTestPipeline(800, 600)
	p.Resize(400, 400)

	assert.Equal(t, Viewport{Width: 400, Height: 400}, p.Viewport())
	assert.Equal(t, Size{Width: 400, Height: 400}, p.TargetSize())
	assert.InDelta(t, 1.0, p.Camera.Aspect(), 1e-12)
	assert.Equal(t, Size{Width: 200, Height: 200}, p.BloomSizes()[0])

	p.Resize(0, -3)
	assert.Equal(t, Viewport{Width: 1, Height: 1}, p.Viewport())
}

func TestPixelAspect(t *testing.T) {
	p := newTestPipeline(80, 24)
	p.SetPixelAspect(0.5)
	assert.InDelta(t, 80*0.5/24.0, p.Camera.Aspect(), 1e-12)

	p.Resize(100, 50)
	assert.InDelta(t, 1.0, p.Camera.Aspect(), 1e-12)
}
