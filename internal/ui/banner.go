package ui

import (
	"fmt"
	"os"
	"strings"

	"palette-studio/internal/colorspace"
	"palette-studio/internal/palette"
)

const bannerTitle = "◆ PALETTE STUDIO"

var bannerEmitted = false

// FormatBannerArt returns the title tinted across the palette of base, one
// hue per glyph, followed by a strip of the eight palette swatches.
func FormatBannerArt(base colorspace.Color) string {
	p := palette.GeneratePalette(base)
	if !IsRich() {
		hexes := make([]string, len(p))
		for i, c := range p {
			hexes[i] = c.Hex()
		}
		return bannerTitle + "\n" + strings.Join(hexes, " ")
	}

	var title strings.Builder
	for i, ch := range []rune(bannerTitle) {
		c := p[i%len(p)]
		title.WriteString(hexStyle(c.Hex()).Sprint(string(ch)))
	}

	var strip strings.Builder
	for _, c := range p {
		strip.WriteString(Swatch(c, 4))
	}
	return title.String() + "\n" + strip.String()
}

// FormatBannerLine returns the version/tagline line
func FormatBannerLine(version, tagline string) string {
	if IsRich() {
		return fmt.Sprintf("%s %s %s", Info(version), Muted("—"), AccentDim(tagline))
	}
	return fmt.Sprintf("%s — %s", version, tagline)
}

// EmitBanner displays the banner once, only on a terminal
func EmitBanner(version, tagline string, base colorspace.Color) {
	if bannerEmitted || !isTTY() {
		return
	}

	fmt.Println()
	fmt.Println(Muted(boxTopLeft + strings.Repeat(boxHorizontal, 60) + boxTopRight))
	fmt.Println(FormatBannerArt(base))
	fmt.Println(FormatBannerLine(version, tagline))
	fmt.Println(Muted(boxBottomLeft + strings.Repeat(boxHorizontal, 60) + boxBottomRight))
	fmt.Println()
	bannerEmitted = true
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
