// Package ui holds the terminal color palette used for sync progress and reports.
//
// A [Palette] is created per output writer; lipgloss detects whether that writer is a terminal and
// drops styling otherwise, so the same code prints colored lines to a TTY and plain lines to pipes and files.
package ui
