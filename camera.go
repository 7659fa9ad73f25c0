package particleglobe

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	fovY     float64 // degrees
	aspect   float64
	near     float64
	far      float64
	position mgl64.Vec3
	lookAt   mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
}

func NewCamera(fovY, aspect, near, far float64, position mgl64.Vec3) *Camera {
	c := &Camera{
		fovY:     fovY,
		aspect:   aspect,
		near:     near,
		far:      far,
		position: position,
	}
	c.view = mgl64.LookAtV(c.position, c.lookAt, mgl64.Vec3{0, 1, 0})
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) SetAspect(aspect float64) {
	c.aspect = aspect
}

func (c *Camera) Aspect() float64 {
	return c.aspect
}

func (c *Camera) Near() float64 {
	return c.near
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	return c.position
}

// UpdateProjectionMatrix must be called after changing the aspect or fov.
func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(degreesToRadians(c.fovY), c.aspect, c.near, c.far)
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.view
}
