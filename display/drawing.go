package display

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/particleglobe"
)

// maxSpritesPerBatch keeps vertex indices inside uint16.
const maxSpritesPerBatch = 0xffff / 4

var (
	whiteImage *ebiten.Image
	whiteSub   *ebiten.Image
)

func solidSource() *ebiten.Image {
	if whiteSub == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSub
}

// appendSpriteQuads adds one square per sprite, centred on the sprite.
func appendSpriteQuads(vertices []ebiten.Vertex, indices []uint16, sprites []particleglobe.Sprite, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0

	for _, s := range sprites {
		half := s.Size / 2
		base := uint16(len(vertices))

		v := ebiten.Vertex{
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: s.Alpha,
		}
		v.DstX, v.DstY = s.X-half, s.Y-half
		vertices = append(vertices, v)
		v.DstX, v.DstY = s.X+half, s.Y-half
		vertices = append(vertices, v)
		v.DstX, v.DstY = s.X+half, s.Y+half
		vertices = append(vertices, v)
		v.DstX, v.DstY = s.X-half, s.Y+half
		vertices = append(vertices, v)

		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// spriteBatcher reuses its buffers between frames.
type spriteBatcher struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func (b *spriteBatcher) draw(dst *ebiten.Image, sprites []particleglobe.Sprite, clr color.RGBA) {
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true

	for start := 0; start < len(sprites); start += maxSpritesPerBatch {
		end := min(start+maxSpritesPerBatch, len(sprites))
		b.vertices, b.indices = appendSpriteQuads(b.vertices[:0], b.indices[:0], sprites[start:end], clr)
		dst.DrawTriangles(b.vertices, b.indices, solidSource(), op)
	}
}
