package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/smasonuk/particleglobe"
)

// ramp runs from empty to brightest.
var ramp = []rune(" .,:-=+*#%@")

// Canvas is a brightness grid, one value per terminal cell.
type Canvas struct {
	w, h   int
	lum    []float64
	bright []float64
	glow   []float64
	tmp    []float64
	out    []float64
	clr    color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Resize(w, h int) {
	w = max(w, 0)
	h = max(h, 0)
	if w == c.w && h == c.h && c.lum != nil {
		return
	}
	c.w, c.h = w, h
	n := w * h
	c.lum = make([]float64, n)
	c.bright = make([]float64, n)
	c.glow = make([]float64, n)
	c.tmp = make([]float64, n)
	c.out = make([]float64, n)
}

func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

func (c *Canvas) Clear() {
	clear(c.lum)
	clear(c.glow)
}

// Plot accumulates sprite brightness into the cells they cover.
func (c *Canvas) Plot(sprites []particleglobe.Sprite, clr color.RGBA) {
	c.clr = clr
	l := particleglobe.Luminance(float64(clr.R)/255, float64(clr.G)/255, float64(clr.B)/255)
	for _, s := range sprites {
		x, y := int(s.X), int(s.Y)
		if s.X < 0 || s.Y < 0 || x >= c.w || y >= c.h {
			continue
		}
		c.lum[y*c.w+x] += float64(s.Alpha) * l
	}
}

func (c *Canvas) at(buf []float64, x, y int) float64 {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return buf[y*c.w+x]
}

// blur runs a separable Gaussian from c.bright into c.out.
func (c *Canvas) blur(weights []float32) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			sum := c.at(c.bright, x, y) * float64(weights[0])
			for i := 1; i < len(weights); i++ {
				sum += (c.at(c.bright, x-i, y) + c.at(c.bright, x+i, y)) * float64(weights[i])
			}
			c.tmp[y*c.w+x] = sum
		}
	}
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			sum := c.at(c.tmp, x, y) * float64(weights[0])
			for i := 1; i < len(weights); i++ {
				sum += (c.at(c.tmp, x, y-i) + c.at(c.tmp, x, y+i)) * float64(weights[i])
			}
			c.out[y*c.w+x] = sum
		}
	}
}

// Glow adds the bloom of every bright cell, one blur per mip level.
func (c *Canvas) Glow(cfg particleglobe.BloomConfig) {
	if cfg.Mips == 0 || cfg.Strength == 0 {
		return
	}
	for i, v := range c.lum {
		v = min(v, 1)
		c.bright[i] = v * cfg.HighPass(v)
	}
	for level := 0; level < min(cfg.Mips, 5); level++ {
		c.blur(particleglobe.GaussianWeights(particleglobe.BloomKernelRadius(level)))
		f := cfg.MipFactor(level)
		for i, v := range c.out {
			c.glow[i] += f * v
		}
	}
}

// Value is the final brightness of a cell in [0,1].
func (c *Canvas) Value(x, y int) float64 {
	i := y*c.w + x
	return min(c.lum[i]+c.glow[i], 1)
}

// Cell returns what to draw at (x, y).
func (c *Canvas) Cell(x, y int) (rune, tcell.Style) {
	v := c.Value(x, y)
	r := ramp[int(v*float64(len(ramp)-1)+0.5)]
	if r == ' ' {
		return r, tcell.StyleDefault.Background(tcell.ColorBlack)
	}
	fg := tcell.NewRGBColor(
		int32(float64(c.clr.R)*v),
		int32(float64(c.clr.G)*v),
		int32(float64(c.clr.B)*v),
	)
	return r, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}
