package particleglobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomMipSizes(t *testing.T) {
	sizes := BloomMipSizes(800, 600, 5)
	assert.Equal(t, []Size{
		{400, 300},
		{200, 150},
		{100, 75},
		{50, 38},
		{25, 19},
	}, sizes)

	assert.Len(t, BloomMipSizes(800, 600, 9), maxBloomMips)
	assert.Empty(t, BloomMipSizes(800, 600, 0))

	for _, s := range BloomMipSizes(3, 1, 5) {
		assert.GreaterOrEqual(t, s.Width, 1)
		assert.GreaterOrEqual(t, s.Height, 1)
	}
}

func TestGaussianWeightsSumToOne(t *testing.T) {
	for level := 0; level < maxBloomMips; level++ {
		radius := BloomKernelRadius(level)
		w := GaussianWeights(radius)
		require.Len(t, w, radius)

		sum := float64(w[0])
		for i := 1; i < len(w); i++ {
			sum += 2 * float64(w[i])
			assert.Less(t, w[i], w[i-1], "weights fall off from the centre")
		}
		assert.InDelta(t, 1, sum, 1e-6)
	}
}

func TestBloomMipFactor(t *testing.T) {
	b := BloomConfig{Strength: 1.5, Radius: 0.4}
	assert.InDelta(t, 1.5*(1.0+(0.2-1.0)*0.4), b.MipFactor(0), 1e-12)
	assert.InDelta(t, 1.5*(0.2+(1.0-0.2)*0.4), b.MipFactor(4), 1e-12)

	b.Radius = 0
	assert.InDelta(t, 1.5*0.6, b.MipFactor(2), 1e-12)
}

func TestBloomHighPass(t *testing.T) {
	b := BloomConfig{Threshold: 0.85}
	assert.Equal(t, 0.0, b.HighPass(0.5))
	assert.Equal(t, 0.0, b.HighPass(0.85))
	assert.Equal(t, 1.0, b.HighPass(0.9))
	assert.InDelta(t, 0.5, b.HighPass(0.855), 1e-9)
	assert.InDelta(t, 1.0, Luminance(1, 1, 1), 1e-12)
}
