package ui

import (
	"github.com/fatih/color"

	"palette-studio/internal/colorspace"
)

// CLI_PALETTE holds the brand colors as hex so they go through the same
// conversions as user colors.
var CLI_PALETTE = struct {
	Accent       string
	AccentBright string
	AccentDim    string

	Info  string
	Error string
	Muted string
}{
	Accent:       "#3b82f6",
	AccentBright: "#60a5fa",
	AccentDim:    "#1d4ed8",
	Info:         "#38bdf8",
	Error:        "#e23d2d",
	Muted:        "#8b7f77",
}

// hexStyle builds a true-color foreground style from a hex constant. When
// the terminal has no color the fallback basic attribute is used instead.
func hexStyle(hex string, fallback ...color.Attribute) *color.Color {
	c, ok := colorspace.HexToHSL(hex)
	if !ok || !trueColor() {
		return color.New(fallback...)
	}
	r, g, b := c.RGB()
	return color.RGB(r, g, b)
}

// Swatch renders width cells with c as background.
func Swatch(c colorspace.Color, width int) string {
	cells := spaces(width)
	if !IsRich() {
		return "[" + c.Hex() + "]"
	}
	r, g, b := c.RGB()
	return color.BgRGB(r, g, b).Sprint(cells)
}

// SwatchLabel renders text on c, picking black or white text by lightness.
func SwatchLabel(c colorspace.Color, text string) string {
	if !IsRich() {
		return text
	}
	r, g, b := c.RGB()
	style := color.BgRGB(r, g, b)
	if c.L >= 55 {
		style.Add(color.FgBlack)
	} else {
		style.Add(color.FgWhite)
	}
	return style.Sprint(text)
}
