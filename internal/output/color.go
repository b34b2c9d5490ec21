package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode controls whether styled output is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type styles struct {
	title    lipgloss.Style
	topLevel lipgloss.Style
	subtask  lipgloss.Style
	body     lipgloss.Style
	muted    lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
}

// newStyles binds the palette to a renderer for w. Auto detects the
// terminal; never forces the ASCII profile so every style renders plain.
func newStyles(w io.Writer, mode ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return styles{
		title:    base.Bold(true),
		topLevel: base.Bold(true).Foreground(lipgloss.Color("2")),
		subtask:  base.Bold(true).Foreground(lipgloss.Color("15")),
		body:     base.Foreground(lipgloss.Color("7")),
		muted:    base.Faint(true),
		success:  base.Foreground(lipgloss.Color("42")),
		failure:  base.Bold(true).Foreground(lipgloss.Color("9")),
	}
}
