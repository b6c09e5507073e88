// Package display formats user-facing text: headings, warnings, wrapped help
// paragraphs and message banners.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Width is the column at which help text wraps.
const Width = 79

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Heading renders a section heading.
func Heading(s string) string { return headingStyle.Render(s) }

// Name renders a template or variable name.
func Name(s string) string { return nameStyle.Render(s) }

// WarningLabel is the "Warning:" prefix used for non-fatal problems.
func WarningLabel() string { return warningStyle.Render("Warning:") }

// WrapParagraphs wraps each blank-line separated paragraph of text to width
// and indents it by pad spaces. Paragraphs stay separated by one blank line.
func WrapParagraphs(text string, width, pad int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	paras := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		wrapped := wordwrap.String(p, width-pad)
		out = append(out, indent.String(wrapped, uint(pad)))
	}
	return strings.Join(out, "\n\n") + "\n"
}

// Banner frames msg between two lines of asterisks.
func Banner(msg string) string {
	rule := strings.Repeat("*", 74)
	return rule + "\n" + strings.TrimRight(msg, "\n") + "\n" + rule + "\n"
}
