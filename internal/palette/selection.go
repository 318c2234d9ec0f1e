package palette

import "encoding/json"

type selectionState uint8

const (
	selectedNone selectionState = iota
	selectedColor
	selectedShade
)

// Selection is the transient pointer into the studio: nothing, a palette
// color, or a palette color plus one of its shades. A shade can only be
// reached through WithShade on a selection that already holds a color.
type Selection struct {
	state selectionState
	index int
	shade ShadeAddress
}

// NoSelection is the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// ColorSelection selects palette color i and nothing else.
func ColorSelection(i int) Selection {
	return Selection{state: selectedColor, index: i}
}

// WithShade returns a copy that also points at shade a. It reports false
// when no palette color is selected.
func (s Selection) WithShade(a ShadeAddress) (Selection, bool) {
	if s.state == selectedNone {
		return s, false
	}
	return Selection{state: selectedShade, index: s.index, shade: a}, true
}

// WithoutShade drops the shade part and keeps the palette index.
func (s Selection) WithoutShade() Selection {
	if s.state == selectedShade {
		s.state = selectedColor
		s.shade = ShadeAddress{}
	}
	return s
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.state == selectedNone
}

// PaletteIndex returns the selected palette index, if any.
func (s Selection) PaletteIndex() (int, bool) {
	return s.index, s.state != selectedNone
}

// Shade returns the selected shade address, if any.
func (s Selection) Shade() (ShadeAddress, bool) {
	return s.shade, s.state == selectedShade
}

type selectionJSON struct {
	PaletteIndex *int          `json:"palette_index"`
	Shade        *ShadeAddress `json:"shade"`
}

// MarshalJSON renders absent parts as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	var out selectionJSON
	if i, ok := s.PaletteIndex(); ok {
		out.PaletteIndex = &i
	}
	if a, ok := s.Shade(); ok {
		out.Shade = &a
	}
	return json.Marshal(out)
}
