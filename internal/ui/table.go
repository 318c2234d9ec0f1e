package ui

import (
	"strings"
)

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableColumn defines a column in a table
type TableColumn struct {
	Key      string
	Header   string
	Align    Align
	MinWidth int
}

// TableBorder style for tables
type TableBorder int

const (
	BorderUnicode TableBorder = iota
	BorderASCII
)

// RenderTableOptions configures table rendering
type RenderTableOptions struct {
	Columns []TableColumn
	Rows    []map[string]string
	Border  TableBorder
	Padding int
	// GroupEvery draws a separator after every n data rows (0 disables).
	GroupEvery int
}

type boxChars struct {
	tl, tr, bl, br  string
	h, v            string
	t, ml, m, mr, b string
}

var (
	unicodeBox = boxChars{
		tl: "┌", tr: "┐", bl: "└", br: "┘",
		h: "─", v: "│",
		t: "┬", ml: "├", m: "┼", mr: "┤", b: "┴",
	}
	asciiBox = boxChars{
		tl: "+", tr: "+", bl: "+", br: "+",
		h: "-", v: "|",
		t: "+", ml: "+", m: "+", mr: "+", b: "+",
	}
)

// RenderTable renders a formatted table. Cell widths ignore ANSI codes so
// colored swatches line up.
func RenderTable(opts RenderTableOptions) string {
	if opts.Padding == 0 {
		opts.Padding = 1
	}

	box := unicodeBox
	if opts.Border == BorderASCII {
		box = asciiBox
	}

	widths := make([]int, len(opts.Columns))
	for i, col := range opts.Columns {
		w := VisibleWidth(col.Header)
		for _, row := range opts.Rows {
			w = max(w, VisibleWidth(row[col.Key]))
		}
		widths[i] = max(w, col.MinWidth, 1)
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(box.h, w+opts.Padding*2)
		}
		return left + strings.Join(parts, mid) + right
	}

	pad := spaces(opts.Padding)
	renderRow := func(values []string) string {
		parts := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			cell := PadRight(values[i], widths[i])
			if col.Align == AlignRight {
				cell = PadLeft(values[i], widths[i])
			}
			parts[i] = pad + cell + pad
		}
		return box.v + strings.Join(parts, box.v) + box.v
	}

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = col.Header
	}

	lines := []string{
		hLine(box.tl, box.t, box.tr),
		renderRow(headers),
		hLine(box.ml, box.m, box.mr),
	}
	for n, row := range opts.Rows {
		if opts.GroupEvery > 0 && n > 0 && n%opts.GroupEvery == 0 {
			lines = append(lines, hLine(box.ml, box.m, box.mr))
		}
		values := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			values[i] = row[col.Key]
		}
		lines = append(lines, renderRow(values))
	}
	lines = append(lines, hLine(box.bl, box.b, box.br))

	return strings.Join(lines, "\n") + "\n"
}
