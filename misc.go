package particleglobe

import "math"

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep matches the GLSL builtin.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
