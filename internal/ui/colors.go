package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Default colors: title, ok, error, warning, help.
const (
	ColorTitle = "#7D56F4"
	ColorOK    = "#04B575"
	ColorErr   = "#FF0000"
	ColorWarn  = "#FFA500"
	ColorHelp  = "#626262"
)

var _ Painter = (*Palette)(nil)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
//
// Styles are bound to a renderer for one writer, so output to a file or buffer carries no escape codes.
type Palette struct {
	r     *lipgloss.Renderer
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette creates a palette with the default colors for output written to w.
func NewPalette(w io.Writer) *Palette {
	return NewPaletteWith(lipgloss.NewRenderer(w), ColorTitle, ColorOK, ColorErr, ColorWarn, ColorHelp)
}

func NewPaletteWith(r *lipgloss.Renderer, t, s, e, w, h string) *Palette {
	return &Palette{
		r:     r,
		title: NewBold(r, t),
		ok:    NewBold(r, s),
		err:   NewBold(r, e),
		warn:  NewStyle(r, w),
		help:  NewEm(r, h),
	}
}

func (p *Palette) Title(s string) string { return p.title.Render(s) }
func (p *Palette) OK(s string) string    { return p.ok.Render(s) }
func (p *Palette) Err(s string) string   { return p.err.Render(s) }
func (p *Palette) Warn(s string) string  { return p.warn.Render(s) }
func (p *Palette) Help(s string) string  { return p.help.Render(s) }

func (p *Palette) On(s string, c lipgloss.Color) string { return p.r.NewStyle().Background(c).Render(s) }
func (p *Palette) As(s string, c lipgloss.Color) string { return p.r.NewStyle().Foreground(c).Render(s) }

func NewStyle(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return NewStyle(r, fg).Bold(true)
}

func NewEm(r *lipgloss.Renderer, fg string) lipgloss.Style {
	return NewStyle(r, fg).Italic(true)
}
