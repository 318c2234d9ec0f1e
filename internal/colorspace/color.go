package colorspace

import "fmt"

// Channel limits for the HSL model.
const (
	HueMax        = 360
	SaturationMax = 100
	LightnessMax  = 100
	channelMax    = 255
)

// Color is an HSL color with integer components.
// H is in degrees [0,360), S and L are percentages [0,100].
type Color struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// New returns a normalized Color: hue wrapped modulo 360, saturation and
// lightness clamped to [0,100].
func New(h, s, l int) Color {
	return Color{
		H: WrapHue(h),
		S: clamp(s, 0, SaturationMax),
		L: clamp(l, 0, LightnessMax),
	}
}

// Normalize re-applies the Color invariants to a value built by hand
// (for example decoded from JSON).
func (c Color) Normalize() Color {
	return New(c.H, c.S, c.L)
}

// RGB converts the color to 8-bit channels.
func (c Color) RGB() (r, g, b int) {
	return HSLToRGB(c.H, c.S, c.L)
}

// Hex returns the #rrggbb form.
func (c Color) Hex() string {
	return RGBToHex(c.RGB())
}

// String returns the hsl(H, S%, L%) form.
func (c Color) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// WrapHue maps any integer hue onto [0,360).
func WrapHue(h int) int {
	h %= HueMax
	if h < 0 {
		h += HueMax
	}
	return h
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
