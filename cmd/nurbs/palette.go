package main

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle is the hue step between successive shapes, in degrees.
const goldenAngle = 137.50776405003785

// shapeColors returns n display colors as "#rrggbb" strings.
func shapeColors(n int) []string {
	colors := make([]string, n)
	for i := range n {
		hue := math.Mod(210+float64(i)*goldenAngle, 360)
		colors[i] = colorful.Hsv(hue, 0.65, 0.85).Hex()
	}
	return colors
}
