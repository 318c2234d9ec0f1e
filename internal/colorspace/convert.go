package colorspace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// hexPattern is the only accepted hex input: six digits, optional '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// HSLToRGB converts h in degrees and s, l in percent to 8-bit channels.
// Inputs are expected to be in range already; the hue is wrapped regardless.
func HSLToRGB(h, s, l int) (r, g, b int) {
	hf := float64(WrapHue(h))
	sf := float64(s) / SaturationMax
	lf := float64(l) / LightnessMax

	a := sf * math.Min(lf, 1-lf)
	channel := func(n float64) int {
		k := math.Mod(n+hf/30, 12)
		v := lf - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1))
		return int(math.Round(v * channelMax))
	}

	return channel(0), channel(8), channel(4)
}

// RGBToHex formats three 8-bit channels as #rrggbb in lowercase.
// Out of range channels are clamped so the result is always 7 characters.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x",
		clamp(r, 0, channelMax),
		clamp(g, 0, channelMax),
		clamp(b, 0, channelMax))
}

// ValidHex reports whether s is a 6-digit hex color with optional leading '#'.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// HexToHSL parses a 6-digit hex color. It returns false, and a zero Color,
// when the input does not match the strict pattern.
func HexToHSL(hex string) (Color, bool) {
	if !ValidHex(hex) {
		return Color{}, false
	}
	hex = strings.TrimPrefix(hex, "#")

	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = float64(v) / channelMax
	}
	r, g, b := ch[0], ch[1], ch[2]

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return Color{
		H: WrapHue(int(math.Round(h * HueMax))),
		S: int(math.Round(s * SaturationMax)),
		L: int(math.Round(l * LightnessMax)),
	}, true
}
