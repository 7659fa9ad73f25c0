package particleglobe

import "math"

const (
	bloomSmoothWidth = 0.01
	maxBloomMips     = 5
)

var (
	bloomKernelRadii = [maxBloomMips]int{3, 5, 7, 9, 11}
	bloomMipFactors  = [maxBloomMips]float64{1.0, 0.8, 0.6, 0.4, 0.2}
)

// BloomConfig controls the glow post-process.
type BloomConfig struct {
	Strength  float64 `json:"strength"`
	Radius    float64 `json:"radius"`
	Threshold float64 `json:"threshold"`
	Mips      int     `json:"mips"`
}

// Size is a pixel extent.
type Size struct {
	Width  int
	Height int
}

// BloomMipSizes halves the viewport once per level, starting at half size.
func BloomMipSizes(width, height, levels int) []Size {
	if levels > maxBloomMips {
		levels = maxBloomMips
	}
	sizes := make([]Size, 0, levels)
	w := math.Round(float64(width) / 2)
	h := math.Round(float64(height) / 2)
	for i := 0; i < levels; i++ {
		sizes = append(sizes, Size{Width: max(int(w), 1), Height: max(int(h), 1)})
		w = math.Round(w / 2)
		h = math.Round(h / 2)
	}
	return sizes
}

// BloomKernelRadius is the blur tap count for a mip level.
func BloomKernelRadius(level int) int {
	return bloomKernelRadii[level]
}

// GaussianWeights returns taps 0..radius-1 of a separable blur with
// sigma = radius. Tap 0 is the centre; the rest are used on both sides and
// the whole kernel sums to one.
func GaussianWeights(radius int) []float32 {
	sigma := float64(radius)
	raw := make([]float64, radius)
	sum := 0.0
	for i := 0; i < radius; i++ {
		raw[i] = 0.39894 * math.Exp(-0.5*float64(i*i)/(sigma*sigma)) / sigma
		if i == 0 {
			sum += raw[i]
		} else {
			sum += 2 * raw[i]
		}
	}
	weights := make([]float32, radius)
	for i := range raw {
		weights[i] = float32(raw[i] / sum)
	}
	return weights
}

// MipFactor is the contribution of a mip level to the final glow.
func (b BloomConfig) MipFactor(level int) float64 {
	f := bloomMipFactors[level]
	return b.Strength * lerp(f, 1.2-f, b.Radius)
}

// Luminance uses Rec. 601 weights on linear [0,1] channels.
func Luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// HighPass is the fraction of a pixel that survives the bright filter.
func (b BloomConfig) HighPass(luma float64) float64 {
	return smoothstep(b.Threshold, b.Threshold+bloomSmoothWidth, luma)
}
