package particleglobe

// Viewport is the drawing surface in pixels (or cells for the terminal).
type Viewport struct {
	Width  int
	Height int
}

// Sprite is one projected point, ready to rasterise.
type Sprite struct {
	X, Y  float32 // surface coordinates, y down
	Size  float32 // surface units
	Depth float64 // distance along the view axis
	Alpha float32
}

// Pipeline holds everything a backend needs to draw the cloud that does not
// depend on a graphics context: camera, viewport, material and bloom sizing.
type Pipeline struct {
	Camera   *Camera
	Material Material
	Bloom    BloomConfig

	// pixelAspect is the width/height ratio of one surface unit.
	pixelAspect float64
	viewport    Viewport
	mips        []Size
}

func NewPipeline(camera *Camera, material Material, bloom BloomConfig, vp Viewport) *Pipeline {
	p := &Pipeline{
		Camera:      camera,
		Material:    material,
		Bloom:       bloom,
		pixelAspect: 1,
	}
	p.Resize(vp.Width, vp.Height)
	return p
}

// SetPixelAspect changes the unit shape and reapplies the current size.
func (p *Pipeline) SetPixelAspect(aspect float64) {
	if aspect <= 0 {
		aspect = 1
	}
	p.pixelAspect = aspect
	p.Resize(p.viewport.Width, p.viewport.Height)
}

// Resize updates the camera projection, the render target and the bloom
// buffers together. Repeating the same size is a no-op in effect.
func (p *Pipeline) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)

	p.viewport = Viewport{Width: width, Height: height}
	p.Camera.SetAspect(float64(width) * p.pixelAspect / float64(height))
	p.Camera.UpdateProjectionMatrix()
	p.mips = BloomMipSizes(width, height, p.Bloom.Mips)
}

func (p *Pipeline) Viewport() Viewport {
	return p.viewport
}

// TargetSize is the size of the offscreen scene buffer.
func (p *Pipeline) TargetSize() Size {
	return Size{Width: p.viewport.Width, Height: p.viewport.Height}
}

// BloomSizes returns the size of every bloom mip, largest first.
func (p *Pipeline) BloomSizes() []Size {
	out := make([]Size, len(p.mips))
	copy(out, p.mips)
	return out
}

// Project appends to dst a sprite for every point inside the view frustum.
func (p *Pipeline) Project(frame Frame, dst []Sprite) []Sprite {
	model := ModelMatrix(frame.Rotation, frame.Translation)
	mvp := p.Camera.ProjectionMatrix().Mul4(p.Camera.ViewMatrix()).Mul4(model)

	w := float64(p.viewport.Width)
	h := float64(p.viewport.Height)
	near := p.Camera.Near()

	for i := 0; i < frame.Points.Len(); i++ {
		x, y, z := frame.Points.At(i)
		clip := toClip(mvp, x, y, z)
		depth := clip.W()
		if depth <= near {
			continue
		}
		ndcX := clip.X() / depth
		ndcY := clip.Y() / depth
		ndcZ := clip.Z() / depth
		if ndcZ < -1 || ndcZ > 1 {
			continue
		}

		size := p.Material.Size * (h / 2) / depth
		if size < 1 {
			size = 1
		}

		dst = append(dst, Sprite{
			X:     float32((ndcX + 1) / 2 * w),
			Y:     float32((1 - ndcY) / 2 * h),
			Size:  float32(size),
			Depth: depth,
			Alpha: float32(p.Material.Alpha(i, float64(frame.Tick))),
		})
	}
	return dst
}
