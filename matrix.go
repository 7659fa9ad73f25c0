package particleglobe

import "github.com/go-gl/mathgl/mgl64"

// ModelMatrix places the cloud: rotate about y, then translate in x/y.
func ModelMatrix(rotationY float64, translation Vector2) mgl64.Mat4 {
	t := mgl64.Translate3D(translation.X, translation.Y, 0)
	r := mgl64.HomogRotate3DY(rotationY)
	return t.Mul4(r)
}

// toClip runs a model-space point through a combined model-view-projection.
func toClip(mvp mgl64.Mat4, x, y, z float32) mgl64.Vec4 {
	return mvp.Mul4x1(mgl64.Vec4{float64(x), float64(y), float64(z), 1})
}
