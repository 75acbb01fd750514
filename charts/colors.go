package charts

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// Continuous ramps used by the transforms. Blues drives the gradient bars,
// the viridis-style ramp orders the top-N bars perceptually, and the
// spectral ramp colors the rose categories.
var (
	bluesRamp = palette.RGBGradient{Colors: []color.RGBA{
		{0xf7, 0xfb, 0xff, 0xff},
		{0xc6, 0xdb, 0xef, 0xff},
		{0x6b, 0xae, 0xd6, 0xff},
		{0x21, 0x71, 0xb5, 0xff},
		{0x08, 0x30, 0x6b, 0xff},
	}}

	viridisRamp = palette.RGBGradient{Colors: []color.RGBA{
		{0x44, 0x01, 0x54, 0xff},
		{0x3b, 0x52, 0x8b, 0xff},
		{0x21, 0x91, 0x8c, 0xff},
		{0x5e, 0xc9, 0x62, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	}}

	spectralRamp = palette.RGBGradient{Colors: []color.RGBA{
		{0x9e, 0x01, 0x42, 0xff},
		{0xf4, 0x6d, 0x43, 0xff},
		{0xfe, 0xe0, 0x8b, 0xff},
		{0xe6, 0xf5, 0x98, 0xff},
		{0x66, 0xc2, 0xa5, 0xff},
		{0x5e, 0x4f, 0xa2, 0xff},
	}}
)

// quarterColors cycles across the per-year series of the quarterly chart.
var quarterColors = []string{"#4a90e2", "#4edbbf", "#ff6b6b", "#ffd166"}

// rampHex samples a continuous palette at x (clamped to [0,1]) as a CSS hex color.
func rampHex(g palette.RGBGradient, x float64) string {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return hexColor(g.Map(x))
}

func hexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
