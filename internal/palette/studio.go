package palette

import (
	"github.com/pkg/errors"

	"palette-studio/internal/colorspace"
)

var (
	// ErrIndexOutOfRange is returned for a palette index or shade address
	// outside the generated sets.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoColorSelected is returned when an operation needs a selected
	// palette color.
	ErrNoColorSelected = errors.New("no palette color selected")
	// ErrNoShadeSelected is returned when copying a shade that is not selected.
	ErrNoShadeSelected = errors.New("no shade selected")
	// ErrUnknownTarget is returned by Copy for an unknown CopyTarget.
	ErrUnknownTarget = errors.New("unknown copy target")
)

// CopyTarget names what a copy request refers to.
type CopyTarget string

const (
	TargetColor CopyTarget = "color"
	TargetShade CopyTarget = "shade"
)

// StudioOption configures a Studio.
type StudioOption func(*Studio)

// WithRegenerateHook registers fn to run after every palette regeneration.
func WithRegenerateHook(fn func(Palette)) StudioOption {
	return func(s *Studio) {
		s.onRegenerate = append(s.onRegenerate, fn)
	}
}

// WithShadesHook registers fn to run after shades are generated for a
// selected palette index.
func WithShadesHook(fn func(index int, shades ShadeSet)) StudioOption {
	return func(s *Studio) {
		s.onShades = append(s.onShades, fn)
	}
}

// Studio owns the base color and everything derived from it. It is not
// safe for concurrent use; callers serialize access.
//
// Every base mutation regenerates the palette immediately and clears the
// selected shade. The selected palette index is kept, and the stored shades
// stay as generated until the next SelectColor.
type Studio struct {
	base      colorspace.Color
	palette   Palette
	shades    ShadeSet
	hasShades bool
	selection Selection

	onRegenerate []func(Palette)
	onShades     []func(int, ShadeSet)
}

// NewStudio creates a studio with a generated palette and no selection.
func NewStudio(base colorspace.Color, opts ...StudioOption) *Studio {
	s := &Studio{}
	for _, opt := range opts {
		opt(s)
	}
	s.base = base.Normalize()
	s.regenerate()
	return s
}

// SetBase replaces the base color and regenerates the palette.
func (s *Studio) SetBase(h, sat, l int) {
	s.base = colorspace.New(h, sat, l)
	s.regenerate()
}

// SetBaseHex parses hex and, when valid, replaces the base color. Invalid
// input leaves the studio untouched and returns false.
func (s *Studio) SetBaseHex(hex string) bool {
	c, ok := colorspace.HexToHSL(hex)
	if !ok {
		return false
	}
	s.base = c
	s.regenerate()
	return true
}

func (s *Studio) regenerate() {
	s.palette = GeneratePalette(s.base)
	s.selection = s.selection.WithoutShade()
	for _, fn := range s.onRegenerate {
		fn(s.palette)
	}
}

// SelectColor selects palette color i, generates its shades and clears any
// selected shade.
func (s *Studio) SelectColor(i int) error {
	if i < 0 || i >= PaletteSize {
		return errors.Wrapf(ErrIndexOutOfRange, "palette index %d", i)
	}
	s.selection = ColorSelection(i)
	s.shades = GenerateShades(s.palette[i])
	s.hasShades = true
	for _, fn := range s.onShades {
		fn(i, s.shades)
	}
	return nil
}

// SelectShade selects shade (row, index) of the selected palette color.
func (s *Studio) SelectShade(row, index int) error {
	addr := ShadeAddress{Row: row, Index: index}
	if !addr.Valid() {
		return errors.Wrapf(ErrIndexOutOfRange, "shade %d/%d", row, index)
	}
	next, ok := s.selection.WithShade(addr)
	if !ok {
		return ErrNoColorSelected
	}
	s.selection = next
	return nil
}

// ClearSelection drops both the palette and the shade selection. Stored
// shades are forgotten too.
func (s *Studio) ClearSelection() {
	s.selection = NoSelection()
	s.shades = ShadeSet{}
	s.hasShades = false
}

// Base returns the current base color.
func (s *Studio) Base() colorspace.Color {
	return s.base
}

// Palette returns the current palette.
func (s *Studio) Palette() Palette {
	return s.palette
}

// Selection returns the current selection.
func (s *Studio) Selection() Selection {
	return s.selection
}

// Shades returns the shades generated at the last SelectColor.
func (s *Studio) Shades() (ShadeSet, bool) {
	return s.shades, s.hasShades
}

// SelectedColor returns the palette color at the selected index.
func (s *Studio) SelectedColor() (colorspace.Color, bool) {
	i, ok := s.selection.PaletteIndex()
	if !ok {
		return colorspace.Color{}, false
	}
	return s.palette[i], true
}

// SelectedShade returns the selected shade.
func (s *Studio) SelectedShade() (colorspace.Color, bool) {
	addr, ok := s.selection.Shade()
	if !ok || !s.hasShades {
		return colorspace.Color{}, false
	}
	return s.shades.At(addr), true
}

// SelectedColorFormats renders the selected palette color.
func (s *Studio) SelectedColorFormats() (colorspace.Formats, bool) {
	c, ok := s.SelectedColor()
	if !ok {
		return colorspace.Formats{}, false
	}
	return colorspace.FormatsOf(c), true
}

// SelectedShadeFormats renders the selected shade.
func (s *Studio) SelectedShadeFormats() (colorspace.Formats, bool) {
	c, ok := s.SelectedShade()
	if !ok {
		return colorspace.Formats{}, false
	}
	return colorspace.FormatsOf(c), true
}

// Copy returns the text a copy-to-clipboard request for target in format f
// carries.
func (s *Studio) Copy(target CopyTarget, f colorspace.Format) (string, error) {
	var (
		formats colorspace.Formats
		ok      bool
	)
	switch target {
	case TargetColor:
		if formats, ok = s.SelectedColorFormats(); !ok {
			return "", ErrNoColorSelected
		}
	case TargetShade:
		if formats, ok = s.SelectedShadeFormats(); !ok {
			return "", ErrNoShadeSelected
		}
	default:
		return "", errors.Wrapf(ErrUnknownTarget, "%q", target)
	}

	text := formats.Get(f)
	if text == "" {
		return "", errors.Wrapf(colorspace.ErrUnknownFormat, "%q", f)
	}
	return text, nil
}
