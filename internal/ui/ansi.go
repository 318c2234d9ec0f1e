package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SGR (Select Graphic Rendition) codes: ESC[...m, including 38;2;r;g;b
var ansiSGRPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes all ANSI escape codes from a string
func StripAnsi(input string) string {
	return ansiSGRPattern.ReplaceAllString(input, "")
}

// VisibleWidth returns the display width of a string, ignoring ANSI codes
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads a string to a minimum visible width
func PadRight(input string, width int) string {
	return input + spaces(width-VisibleWidth(input))
}

// PadLeft pads a string to a minimum visible width
func PadLeft(input string, width int) string {
	return spaces(width-VisibleWidth(input)) + input
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
