package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPaletteWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPalette(&buf)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"title", p.Title},
		{"ok", p.OK},
		{"err", p.Err},
		{"warn", p.Warn},
		{"help", p.Help},
		{"as", func(s string) string { return p.As(s, lipgloss.Color(ColorOK)) }},
		{"on", func(s string) string { return p.On(s, lipgloss.Color(ColorErr)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn("plain"); got != "plain" {
				t.Errorf("expected unstyled text, got %q", got)
			}
		})
	}
}
