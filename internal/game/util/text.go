package util

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most width runes, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}

// Center pads s with spaces on both sides to the given width.
func Center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// Width returns the number of cells s occupies when every rune is one cell wide.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}
