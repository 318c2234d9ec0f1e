package colorspace

import (
	"image/color"
	"math"
	"testing"

	"github.com/crazy3lf/colorconv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l int
		r, g, b int
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 0, 0, 100, 255, 255, 255},
		{"mid gray", 0, 0, 50, 128, 128, 128},
		{"red", 0, 100, 50, 255, 0, 0},
		{"green", 120, 100, 50, 0, 255, 0},
		{"blue", 240, 100, 50, 0, 0, 255},
		{"yellow", 60, 100, 50, 255, 255, 0},
		{"steel", 210, 25, 73, 169, 186, 203},
		{"hue 360 wraps to red", 360, 100, 50, 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSLToRGB(tt.h, tt.s, tt.l)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    string
	}{
		{0, 0, 0, "#000000"},
		{255, 255, 255, "#ffffff"},
		{1, 2, 3, "#010203"},
		{170, 187, 204, "#aabbcc"},
		{300, -4, 16, "#ff0010"},
	}

	for _, tt := range tests {
		got := RGBToHex(tt.r, tt.g, tt.b)
		assert.Equal(t, tt.want, got)
		assert.Len(t, got, 7)
	}
}

func TestBlackAndWhiteHex(t *testing.T) {
	assert.Equal(t, "#000000", RGBToHex(HSLToRGB(0, 0, 0)))
	assert.Equal(t, "#ffffff", RGBToHex(HSLToRGB(0, 0, 100)))
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"red", "#ff0000", Color{0, 100, 50}},
		{"lime", "00ff00", Color{120, 100, 50}},
		{"blue upper", "#0000FF", Color{240, 100, 50}},
		{"gray", "#808080", Color{0, 0, 50}},
		{"steel", "#aabbcc", Color{210, 25, 73}},
		{"black", "#000000", Color{0, 0, 0}},
		{"white", "#ffffff", Color{0, 0, 100}},
		{"near red hue rounds into range", "#ff0001", Color{0, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexToHSL(tt.hex)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexToHSLRejectsInvalid(t *testing.T) {
	for _, in := range []string{"GGGGGG", "#12345", "1234567", "", "#", "##aabbcc", " aabbcc", "#aabbc g", "#abc"} {
		c, ok := HexToHSL(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, Color{}, c)
		assert.False(t, ValidHex(in))
	}
}

func TestHexPrefixOptional(t *testing.T) {
	with, ok := HexToHSL("#aabbcc")
	require.True(t, ok)
	without, ok := HexToHSL("aabbcc")
	require.True(t, ok)
	assert.Equal(t, with, without)
}

func TestGrayRoundTripWithinOne(t *testing.T) {
	for v := 0; v <= 255; v++ {
		c, ok := HexToHSL(RGBToHex(v, v, v))
		require.True(t, ok)
		r, g, b := HSLToRGB(c.H, c.S, c.L)
		for _, got := range []int{r, g, b} {
			assert.LessOrEqual(t, absInt(got-v), 1, "gray %d", v)
		}
	}
}

// Integer HSL cannot hit every RGB triple: half a degree of hue moves a
// saturated channel by about two units. Five units bounds the combined
// rounding of h, s and l.
func TestRoundTripDriftIsBounded(t *testing.T) {
	const maxDrift = 5
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				c, ok := HexToHSL(RGBToHex(r, g, b))
				require.True(t, ok)
				r2, g2, b2 := c.RGB()
				assert.LessOrEqual(t, absInt(r2-r), maxDrift, "r of %d,%d,%d", r, g, b)
				assert.LessOrEqual(t, absInt(g2-g), maxDrift, "g of %d,%d,%d", r, g, b)
				assert.LessOrEqual(t, absInt(b2-b), maxDrift, "b of %d,%d,%d", r, g, b)
			}
		}
	}
}

func TestHexToHSLMatchesColorful(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 17 {
				hex := RGBToHex(r, g, b)
				ours, ok := HexToHSL(hex)
				require.True(t, ok)

				ref, err := colorful.Hex(hex)
				require.NoError(t, err)
				h, s, l := ref.Hsl()

				assert.InDelta(t, l*100, float64(ours.L), 1, hex)
				assert.InDelta(t, s*100, float64(ours.S), 1, hex)
				if ours.S > 0 {
					assert.LessOrEqual(t, hueDistance(h, float64(ours.H)), 1.0, hex)
				}
			}
		}
	}
}

func TestHexToHSLMatchesColorconv(t *testing.T) {
	samples := []color.RGBA{
		{255, 127, 0, 255},
		{255, 0, 255, 255},
		{0, 255, 255, 255},
		{18, 52, 86, 255},
		{200, 200, 40, 255},
	}
	for _, c := range samples {
		hex := RGBToHex(int(c.R), int(c.G), int(c.B))
		ours, ok := HexToHSL(hex)
		require.True(t, ok)

		h, s, l := colorconv.ColorToHSL(c)
		assert.InDelta(t, l*100, float64(ours.L), 1, hex)
		assert.InDelta(t, s*100, float64(ours.S), 1, hex)
		assert.LessOrEqual(t, hueDistance(h, float64(ours.H)), 1.0, hex)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func hueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}
