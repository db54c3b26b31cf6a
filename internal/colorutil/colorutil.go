package colorutil

import "math"

type RGB struct {
	R uint8
	G uint8
	B uint8
}

// srgbKnee is the WCAG sRGB linearization threshold.
const srgbKnee = 0.03928

func srgbToLinear(c float64) float64 {
	if c <= srgbKnee {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the WCAG relative luminance of rgb in [0, 1].
func Luminance(rgb RGB) float64 {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	b := srgbToLinear(float64(rgb.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}
