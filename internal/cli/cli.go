// Package cli implements the palette command: print a palette and its
// shades as terminal swatches and optionally copy one color.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"palette-studio/internal/clipboard"
	"palette-studio/internal/colorspace"
	"palette-studio/internal/config"
	"palette-studio/internal/palette"
	"palette-studio/internal/ui"
)

// Options are the parsed command line flags.
type Options struct {
	Hue, Sat, Light int
	Hex             string
	Select          int
	Shade           string
	Format          string
	Copy            bool
	ASCII           bool

	given map[string]bool
}

// Given reports whether flag name was passed on the command line.
func (o *Options) Given(name string) bool {
	return o.given[name]
}

// WriterFactory returns the clipboard collaborator used by -copy.
type WriterFactory func() (clipboard.Writer, error)

// Parse reads flags from args (without the program name).
func Parse(args []string, stderr io.Writer) (*Options, error) {
	opts := &Options{given: make(map[string]bool)}
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.Hue, "hue", 0, "base hue in degrees")
	fs.IntVar(&opts.Sat, "sat", 0, "base saturation percent")
	fs.IntVar(&opts.Light, "light", 0, "base lightness percent")
	fs.StringVar(&opts.Hex, "hex", "", "base color as #rrggbb (invalid values are ignored)")
	fs.IntVar(&opts.Select, "select", 0, "palette index 0-7 to expand into shades")
	fs.StringVar(&opts.Shade, "shade", "", "shade to select as ROW,INDEX (needs -select)")
	fs.StringVar(&opts.Format, "format", "hex", "copy format: hsl, rgb or hex")
	fs.BoolVar(&opts.Copy, "copy", false, "copy the selected shade, or the selected color, to the clipboard")
	fs.BoolVar(&opts.ASCII, "ascii", false, "draw tables with ASCII borders")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.given[f.Name] = true })
	return opts, nil
}

// StartingBase returns the configured base color. An unusable default_base
// is logged and replaced by the built-in default.
func StartingBase(cfg *config.Config) colorspace.Color {
	base, ok := cfg.ResolveBase()
	if !ok {
		ui.LogStatus("warn", fmt.Sprintf("default_base %q is not a 6-digit hex color, using %s", cfg.DefaultBase, base.Hex()))
	}
	return base
}

// Run executes the command against a studio seeded with base.
func Run(ctx context.Context, opts *Options, base colorspace.Color, stdout io.Writer, newWriter WriterFactory) error {
	studio := palette.NewStudio(base)

	if opts.Given("hue") || opts.Given("sat") || opts.Given("light") {
		b := studio.Base()
		studio.SetBase(
			pick(opts, "hue", opts.Hue, b.H),
			pick(opts, "sat", opts.Sat, b.S),
			pick(opts, "light", opts.Light, b.L),
		)
	}
	if opts.Hex != "" && !studio.SetBaseHex(opts.Hex) {
		ui.LogStatus("warn", "Ignoring invalid hex color "+strconv.Quote(opts.Hex))
	}

	border := ui.BorderUnicode
	if opts.ASCII {
		border = ui.BorderASCII
	}

	base = studio.Base()
	fmt.Fprintf(stdout, "%s %s  %s\n", ui.Accent("Base"), ui.SwatchLabel(base, " "+base.Hex()+" "), ui.Subtle("%s", base))
	fmt.Fprint(stdout, renderPalette(studio.Palette(), border))

	if opts.Given("select") {
		if err := studio.SelectColor(opts.Select); err != nil {
			return err
		}
		shades, _ := studio.Shades()
		fmt.Fprintf(stdout, "%s\n", ui.Accent("Shades of color %d", opts.Select))
		fmt.Fprint(stdout, renderShades(shades, border))
	}

	if opts.Shade != "" {
		row, index, err := parseShade(opts.Shade)
		if err != nil {
			return err
		}
		if err := studio.SelectShade(row, index); err != nil {
			return errors.Wrap(err, "-shade")
		}
	}

	if f, ok := studio.SelectedColorFormats(); ok {
		printFormats(stdout, "Selected color", f)
	}
	if f, ok := studio.SelectedShadeFormats(); ok {
		printFormats(stdout, "Selected shade", f)
	}

	if !opts.Copy {
		return nil
	}
	return copySelection(ctx, studio, opts.Format, newWriter)
}

func copySelection(ctx context.Context, studio *palette.Studio, format string, newWriter WriterFactory) error {
	f, err := colorspace.ParseFormat(format)
	if err != nil {
		return err
	}

	target := palette.TargetColor
	if _, ok := studio.Selection().Shade(); ok {
		target = palette.TargetShade
	}
	text, err := studio.Copy(target, f)
	if err != nil {
		return errors.Wrap(err, "-copy needs -select")
	}

	w, err := newWriter()
	if err != nil {
		return err
	}
	if err := clipboard.Copy(ctx, w, text); err != nil {
		return err
	}
	ui.LogStatus("success", "Copied "+text)
	return nil
}

func pick(opts *Options, name string, v, fallback int) int {
	if opts.Given(name) {
		return v
	}
	return fallback
}

func parseShade(s string) (row, index int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("-shade must be ROW,INDEX, got %q", s)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, errors.Wrap(err, "-shade row")
	}
	if index, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, errors.Wrap(err, "-shade index")
	}
	return row, index, nil
}

var colorColumns = []ui.TableColumn{
	{Key: "swatch", Header: ""},
	{Key: "hsl", Header: "HSL"},
	{Key: "rgb", Header: "RGB"},
	{Key: "hex", Header: "HEX"},
}

func colorRow(c colorspace.Color) map[string]string {
	f := colorspace.FormatsOf(c)
	return map[string]string{
		"swatch": ui.Swatch(c, 6),
		"hsl":    f.HSL,
		"rgb":    f.RGB,
		"hex":    f.Hex,
	}
}

func renderPalette(p palette.Palette, border ui.TableBorder) string {
	rows := make([]map[string]string, len(p))
	for i, c := range p {
		rows[i] = colorRow(c)
		rows[i]["n"] = strconv.Itoa(i)
	}
	cols := append([]ui.TableColumn{{Key: "n", Header: "#", Align: ui.AlignRight}}, colorColumns...)
	return ui.RenderTable(ui.RenderTableOptions{Columns: cols, Rows: rows, Border: border})
}

func renderShades(set palette.ShadeSet, border ui.TableBorder) string {
	rows := make([]map[string]string, 0, len(set))
	for row := 0; row < palette.ShadeRows; row++ {
		for i, c := range set.Group(row) {
			r := colorRow(c)
			r["addr"] = fmt.Sprintf("%d,%d", row, i)
			rows = append(rows, r)
		}
	}
	cols := append([]ui.TableColumn{{Key: "addr", Header: "SHADE"}}, colorColumns...)
	return ui.RenderTable(ui.RenderTableOptions{
		Columns:    cols,
		Rows:       rows,
		Border:     border,
		GroupEvery: palette.ShadesPerRow,
	})
}

func printFormats(w io.Writer, title string, f colorspace.Formats) {
	fmt.Fprintf(w, "%s\n", ui.Heading("%s", title))
	for _, format := range colorspace.AllFormats {
		fmt.Fprintf(w, "  %s %s\n", ui.Muted("%-4s", format.String()+":"), f.Get(format))
	}
}
