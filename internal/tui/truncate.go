package tui

import "github.com/mattn/go-runewidth"

// truncate cuts a line to the given display width, accounting for wide runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
