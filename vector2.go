package particleglobe

type Vector2 struct {
	X float64
	Y float64
}

// mult by scalar
func (v Vector2) Mult(scalar float64) Vector2 {
	return Vector2{
		X: v.X * scalar,
		Y: v.Y * scalar,
	}
}

func (v Vector2) Negate() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}
