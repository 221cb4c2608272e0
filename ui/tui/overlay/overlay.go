// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package overlay composes a dialog on top of a rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

// Dim strips the colors of s and renders it muted.
func Dim(s string) string {
	return dimStyle.Render(ansi.Strip(s))
}

// Place centers fg over bg. fg is clipped to the size of bg.
func Place(bg, fg string) string {
	bgWidth, bgHeight := lipgloss.Size(bg)
	fg = lipgloss.NewStyle().MaxWidth(bgWidth).MaxHeight(bgHeight).Render(fg)
	fgWidth, fgHeight := lipgloss.Size(fg)

	left := (bgWidth - fgWidth) / 2
	top := (bgHeight - fgHeight) / 2

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, line := range fgLines {
		row := i + top
		if row < 0 || row >= len(bgLines) {
			continue
		}
		under := bgLines[row]
		if pad := left - ansi.StringWidth(under); pad > 0 {
			under += strings.Repeat(" ", pad)
		}
		bgLines[row] = ansi.Truncate(under, left, "") + line + ansi.TruncateLeft(under, left+fgWidth, "")
	}

	return strings.Join(bgLines, "\n")
}
