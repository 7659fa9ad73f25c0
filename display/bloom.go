package display

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/particleglobe"
)

type bloomLevel struct {
	down *ebiten.Image // downsampled input, ends up holding the blurred result
	tmp  *ebiten.Image // horizontal pass
}

// bloomPass owns the GPU side of the glow: the scene target, the bright-pass
// buffer and one pair of images per mip.
type bloomPass struct {
	highPass *ebiten.Shader
	blur     *ebiten.Shader

	scene  *ebiten.Image
	bright *ebiten.Image
	levels []bloomLevel

	sceneSize particleglobe.Size
	mipSizes  []particleglobe.Size
}

func newBloomPass() (*bloomPass, error) {
	hp, err := ebiten.NewShader(highPassShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile high-pass shader: %w", err)
	}
	bl, err := ebiten.NewShader(blurShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile blur shader: %w", err)
	}
	return &bloomPass{highPass: hp, blur: bl}, nil
}

// blurWeights pads the kernel for a mip level out to the shader's array size.
func blurWeights(level int) []float32 {
	w := make([]float32, maxKernelTaps)
	copy(w, particleglobe.GaussianWeights(particleglobe.BloomKernelRadius(level)))
	return w
}

func sameSizes(a, b []particleglobe.Size) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ensure reallocates every buffer whose size no longer matches the pipeline.
// It reports whether anything was rebuilt.
func (b *bloomPass) ensure(p *particleglobe.Pipeline) bool {
	target := p.TargetSize()
	mips := p.BloomSizes()
	if b.scene != nil && b.sceneSize == target && sameSizes(b.mipSizes, mips) {
		return false
	}

	b.dispose()
	b.scene = ebiten.NewImage(target.Width, target.Height)
	b.bright = ebiten.NewImage(target.Width, target.Height)
	b.levels = make([]bloomLevel, len(mips))
	for i, s := range mips {
		b.levels[i] = bloomLevel{
			down: ebiten.NewImage(s.Width, s.Height),
			tmp:  ebiten.NewImage(s.Width, s.Height),
		}
	}
	b.sceneSize = target
	b.mipSizes = mips
	return true
}

func (b *bloomPass) dispose() {
	if b.scene != nil {
		b.scene.Deallocate()
		b.bright.Deallocate()
	}
	for _, l := range b.levels {
		l.down.Deallocate()
		l.tmp.Deallocate()
	}
	b.levels = nil
}

func (b *bloomPass) shade(dst, src *ebiten.Image, shader *ebiten.Shader, uniforms map[string]any) {
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = src
	op.Uniforms = uniforms
	op.Blend = ebiten.BlendCopy
	s := dst.Bounds().Size()
	dst.DrawRectShader(s.X, s.Y, shader, op)
}

func scaleInto(dst, src *ebiten.Image) {
	ds := dst.Bounds().Size()
	ss := src.Bounds().Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(ds.X)/float64(ss.X), float64(ds.Y)/float64(ss.Y))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	dst.DrawImage(src, op)
}

// apply composites b.scene plus its glow onto screen.
func (b *bloomPass) apply(screen *ebiten.Image, cfg particleglobe.BloomConfig) {
	screen.DrawImage(b.scene, nil)
	if len(b.levels) == 0 || cfg.Strength == 0 {
		return
	}

	b.shade(b.bright, b.scene, b.highPass, map[string]any{
		"Threshold":   float32(cfg.Threshold),
		"SmoothWidth": float32(0.01),
	})

	src := b.bright
	for i, l := range b.levels {
		scaleInto(l.down, src)
		weights := blurWeights(i)
		b.shade(l.tmp, l.down, b.blur, map[string]any{
			"Direction": []float32{1, 0},
			"Weights":   weights,
		})
		b.shade(l.down, l.tmp, b.blur, map[string]any{
			"Direction": []float32{0, 1},
			"Weights":   weights,
		})
		src = l.down
	}

	ss := screen.Bounds().Size()
	for i, l := range b.levels {
		f := float32(cfg.MipFactor(i))
		ds := l.down.Bounds().Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(ss.X)/float64(ds.X), float64(ss.Y)/float64(ds.Y))
		op.Filter = ebiten.FilterLinear
		op.ColorScale.Scale(f, f, f, f)
		op.Blend = ebiten.BlendLighter
		screen.DrawImage(l.down, op)
	}
}
