package display

// maxKernelTaps must match the Weights array length in blurShaderSrc.
const maxKernelTaps = 11

// highPassShaderSrc keeps only pixels brighter than Threshold.
var highPassShaderSrc = []byte(`//kage:unit pixels

package main

var Threshold float
var SmoothWidth float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	luma := dot(c.rgb, vec3(0.299, 0.587, 0.114))
	a := smoothstep(Threshold, Threshold+SmoothWidth, luma)
	return mix(vec4(0), c, a)
}
`)

// blurShaderSrc is one direction of a separable Gaussian. Unused taps carry
// zero weight.
var blurShaderSrc = []byte(`//kage:unit pixels

package main

var Direction vec2
var Weights [11]float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	sum := imageSrc0At(srcPos) * Weights[0]
	for i := 1; i < 11; i++ {
		off := Direction * float(i)
		sum += (imageSrc0At(srcPos+off) + imageSrc0At(srcPos-off)) * Weights[i]
	}
	return sum
}
`)
