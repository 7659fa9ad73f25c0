package display

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/particleglobe"
)

func TestAppendSpriteQuads(t *testing.T) {
	sprites := []particleglobe.Sprite{
		{X: 10, Y: 20, Size: 4, Alpha: 0.5},
		{X: 100, Y: 50, Size: 1, Alpha: 1},
	}
	vertices, indices := appendSpriteQuads(nil, nil, sprites, color.RGBA{R: 255, G: 0, B: 51, A: 255})
	require.Len(t, vertices, 8)
	require.Len(t, indices, 12)

	assert.Equal(t, float32(8), vertices[0].DstX)
	assert.Equal(t, float32(18), vertices[0].DstY)
	assert.Equal(t, float32(12), vertices[2].DstX)
	assert.Equal(t, float32(22), vertices[2].DstY)
	assert.Equal(t, float32(0.5), vertices[0].ColorA)
	assert.Equal(t, float32(1), vertices[0].ColorR)
	assert.InDelta(t, 0.2, float64(vertices[0].ColorB), 1e-6)

	assert.Equal(t, []uint16{4, 5, 6, 4, 6, 7}, indices[6:])
}

func TestAppendSpriteQuadsReusesBuffers(t *testing.T) {
	sprites := []particleglobe.Sprite{{X: 1, Y: 1, Size: 2, Alpha: 1}}
	vertices, indices := appendSpriteQuads(nil, nil, sprites, color.RGBA{A: 255})
	vertices, indices = appendSpriteQuads(vertices[:0], indices[:0], sprites, color.RGBA{A: 255})
	assert.Len(t, vertices, 4)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, indices)
}

func TestBatchFitsUint16(t *testing.T) {
	assert.LessOrEqual(t, maxSpritesPerBatch*4, 0xffff)
}
