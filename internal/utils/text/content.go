// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-02

// Package text provides the content-cleaning helpers shared by issue and
// comment migration.
package text

import "strings"

// ZeroWidthSpace is the HTML entity inserted after a leading '#' so GitHub
// does not render the line as a Markdown heading. The visible text is
// unchanged.
const ZeroWidthSpace = "&#8203;"

// EscapePercent replaces '%' with its HTML entity. GitHub rejects raw '%'
// characters in some issue contexts.
func EscapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "&#37;")
}

// EscapeHeadings rewrites every line beginning with "#" or " #" to carry a
// zero-width space immediately after the '#'. Lines that merely contain a
// '#' are left alone.
func EscapeHeadings(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, " #"):
			lines[i] = " #" + ZeroWidthSpace + line[2:]
		case strings.HasPrefix(line, "#"):
			lines[i] = "#" + ZeroWidthSpace + line[1:]
		}
	}
	return strings.Join(lines, "\n")
}
