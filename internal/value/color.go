package value

import (
	"fmt"
	"math"
	"strconv"
)

// Color is a point in the bridge's CIE xy color space. RGB and hex inputs are
// normalized to xy before transmission so every color flag ends up on the same
// wire field.
type Color struct {
	X float32
	Y float32
}

// ColorFromXY builds a color from raw color space coordinates.
func ColorFromXY(coords []float64) (Color, error) {
	if len(coords) != 2 {
		return Color{}, fmt.Errorf("expected exactly 2 color space coordinates, got %d", len(coords))
	}
	return Color{X: float32(coords[0]), Y: float32(coords[1])}, nil
}

// ColorFromRGB converts an RGB triple to xy using sRGB gamma expansion and the
// wide-gamut D65 matrix the bridge documentation prescribes.
func ColorFromRGB(components []int) (Color, error) {
	if len(components) != 3 {
		return Color{}, fmt.Errorf("expected exactly 3 RGB components, got %d", len(components))
	}
	for _, c := range components {
		if c < 0 || c > 255 {
			return Color{}, fmt.Errorf("RGB component %d is out of range 0-255", c)
		}
	}

	r := gammaExpand(float64(components[0]) / 255)
	g := gammaExpand(float64(components[1]) / 255)
	b := gammaExpand(float64(components[2]) / 255)

	cx := r*0.664511 + g*0.154324 + b*0.162028
	cy := r*0.283881 + g*0.668433 + b*0.047685
	cz := r*0.000088 + g*0.072310 + b*0.986039

	sum := cx + cy + cz
	if sum == 0 {
		return Color{}, nil
	}
	return Color{X: float32(cx / sum), Y: float32(cy / sum)}, nil
}

// ParseHexColor parses a color given as exactly six hex digits, case
// insensitive, without a leading '#'.
func ParseHexColor(raw string) (Color, error) {
	if len(raw) != 6 {
		return Color{}, fmt.Errorf("%q is not valid: a hex color must be exactly 6 hexadecimal digits", raw)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q is not valid: a hex color must be exactly 6 hexadecimal digits", raw)
	}
	return ColorFromRGB([]int{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)})
}

func gammaExpand(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}
