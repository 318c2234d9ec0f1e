package colorspace

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Format names one textual representation of a color.
type Format string

const (
	FormatHSL Format = "hsl"
	FormatRGB Format = "rgb"
	FormatHex Format = "hex"
)

// AllFormats lists the formats in display order.
var AllFormats = []Format{FormatHSL, FormatRGB, FormatHex}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown color format")

// ParseFormat accepts hsl, rgb or hex in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHSL, FormatRGB, FormatHex:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func (f Format) String() string {
	return string(f)
}

// Formats is the textual view of one Color. It is never stored; build it
// with FormatsOf whenever it is needed.
type Formats struct {
	HSL string `json:"hsl"`
	RGB string `json:"rgb"`
	Hex string `json:"hex"`
}

// FormatsOf renders c as hsl(H, S%, L%), rgb(R, G, B) and #rrggbb.
func FormatsOf(c Color) Formats {
	r, g, b := HSLToRGB(c.H, c.S, c.L)
	return Formats{
		HSL: c.String(),
		RGB: fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		Hex: RGBToHex(r, g, b),
	}
}

// Get returns the string for f. Unknown formats yield "".
func (f Formats) Get(format Format) string {
	switch format {
	case FormatHSL:
		return f.HSL
	case FormatRGB:
		return f.RGB
	case FormatHex:
		return f.Hex
	}
	return ""
}
