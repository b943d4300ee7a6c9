package legend

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// defaultColors is the categorical palette used before generated colours.
var defaultColors = []string{
	"#1890ff", "#2fc25b", "#facc14", "#223273",
	"#8543e0", "#13c2c2", "#3436c7", "#f04864",
}

// goldenAngle spreads generated hues evenly around the HCL wheel.
const goldenAngle = 137.50776405003785

// Palette returns n colours: the default palette first, then HCL colours of
// equal chroma and luminance at golden-angle hue steps.
func Palette(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(defaultColors) {
			out = append(out, defaultColors[i])
			continue
		}
		h := math.Mod(float64(i-len(defaultColors))*goldenAngle+20, 360)
		out = append(out, colorful.Hcl(h, 0.55, 0.65).Clamped().Hex())
	}
	return out
}

// Dim blends a colour towards the unchecked grey by t in [0, 1]. Invalid
// colours come back unchanged.
func Dim(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	grey, _ := colorful.Hex(defaultUnCheckColor)
	return c.BlendHcl(grey, t).Clamped().Hex()
}
