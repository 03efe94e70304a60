package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	errorText lipgloss.Style
	success   lipgloss.Style
	muted     lipgloss.Style
}

// newStyles detects the colour profile from w, so text written to a piped
// stream stays plain even when stdout is a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		errorText: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		success:   r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		muted:     r.NewStyle().Foreground(lipgloss.Color("243")),
	}
}
