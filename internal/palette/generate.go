package palette

import (
	"palette-studio/internal/colorspace"
)

const (
	// PaletteSize is the number of colors derived from a base color.
	PaletteSize = 8
	// ShadeRows is the number of saturation groups in a ShadeSet.
	ShadeRows = 3
	// ShadesPerRow is the number of lightness steps in each group.
	ShadesPerRow = 5
	// ShadeSetSize is the total number of shades for one palette color.
	ShadeSetSize = ShadeRows * ShadesPerRow

	saturationShift = 20
)

// hueSteps is applied after placing the color at the same index. The last
// step is never used.
var hueSteps = [PaletteSize]int{30, 90, 30, 30, 30, 30, 30, 60}

// shadeLightness is the lightness ladder used by every shade row.
var shadeLightness = [ShadesPerRow]int{80, 70, 60, 50, 40}

// Palette is the ordered set of colors derived from one base color.
type Palette [PaletteSize]colorspace.Color

// ShadeSet holds the shades of one palette color: row 0 keeps the source
// saturation, row 1 boosts it and row 2 reduces it.
type ShadeSet [ShadeSetSize]colorspace.Color

// ShadeAddress locates a shade inside a ShadeSet.
type ShadeAddress struct {
	Row   int `json:"row"`
	Index int `json:"index"`
}

// Valid reports whether the address fits a ShadeSet.
func (a ShadeAddress) Valid() bool {
	return a.Row >= 0 && a.Row < ShadeRows && a.Index >= 0 && a.Index < ShadesPerRow
}

func (a ShadeAddress) offset() int {
	return a.Row*ShadesPerRow + a.Index
}

// GeneratePalette derives 8 colors with the base saturation and lightness.
// Relative to the base hue H the hues are H, H+30, H+120, H+150, H+180,
// H+210, H+240 and H+270, all modulo 360.
func GeneratePalette(base colorspace.Color) Palette {
	base = base.Normalize()

	var p Palette
	hue := base.H
	for i := range p {
		p[i] = colorspace.New(hue, base.S, base.L)
		hue += hueSteps[i]
	}
	return p
}

// GenerateShades derives the 15 shades of c. Hue never changes.
func GenerateShades(c colorspace.Color) ShadeSet {
	c = c.Normalize()
	saturations := [ShadeRows]int{
		c.S,
		min(colorspace.SaturationMax, c.S+saturationShift),
		max(0, c.S-saturationShift),
	}

	var set ShadeSet
	for row, s := range saturations {
		for i, l := range shadeLightness {
			set[row*ShadesPerRow+i] = colorspace.New(c.H, s, l)
		}
	}
	return set
}

// Group returns one saturation row.
func (s ShadeSet) Group(row int) [ShadesPerRow]colorspace.Color {
	var g [ShadesPerRow]colorspace.Color
	copy(g[:], s[row*ShadesPerRow:(row+1)*ShadesPerRow])
	return g
}

// At returns the shade at a. The address must be valid.
func (s ShadeSet) At(a ShadeAddress) colorspace.Color {
	return s[a.offset()]
}
