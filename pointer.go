package particleglobe

// PointerMapper turns pointer pixels into the cloud's x/y translation.
type PointerMapper struct {
	MoveScale float64
}

func NewPointerMapper(moveScale float64) PointerMapper {
	return PointerMapper{MoveScale: moveScale}
}

// Normalize maps viewport pixels to [-1,1] on both axes with y pointing up.
// A degenerate viewport maps everything to the centre.
func (m PointerMapper) Normalize(px, py float64, vp Viewport) Vector2 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Vector2{}
	}
	return Vector2{
		X: 2*(px/float64(vp.Width)) - 1,
		Y: 1 - 2*(py/float64(vp.Height)),
	}
}

// Displacement moves the cloud opposite to the pointer.
func (m PointerMapper) Displacement(normalized Vector2) Vector2 {
	return normalized.Negate().Mult(m.MoveScale)
}
