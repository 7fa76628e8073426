// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "strings"

// truncateRunes returns the first limit characters of s. Raw character
// truncation, deliberately not word-boundary aware.
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// alignFooter lays out a footer line with left- and right-aligned tokens
// padded to the given width.
func alignFooter(left, right string, width int) string {
	pad := width - len([]rune(left)) - len([]rune(right))
	if pad < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", pad) + right
}
