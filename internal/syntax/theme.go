package syntax

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HighlightTheme contains styles for each highlight tag.
type HighlightTheme struct {
	styles map[Tag]lipgloss.Style
}

// Style returns the style for the given tag.
func (t HighlightTheme) Style(tag Tag) lipgloss.Style {
	if t.styles == nil {
		return lipgloss.NewStyle()
	}
	if style, ok := t.styles[tag]; ok {
		return style
	}
	if style, ok := t.styles[TagNormal]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// NewHighlightTheme constructs a highlight theme for the given mode ("light" or "dark").
func NewHighlightTheme(mode string) HighlightTheme {
	dark := map[Tag]lipgloss.Style{
		TagNormal:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")),
		TagComment:      lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")),
		TagBlockComment: lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")),
		TagKeyword1:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true),
		TagKeyword2:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")),
		TagString:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E879F9")),
		TagNumber:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
		TagMatch:        lipgloss.NewStyle().Foreground(lipgloss.Color("#0F172A")).Background(lipgloss.Color("#60A5FA")),
	}

	light := map[Tag]lipgloss.Style{
		TagNormal:       lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")),
		TagComment:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
		TagBlockComment: lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
		TagKeyword1:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A16207")).Bold(true),
		TagKeyword2:     lipgloss.NewStyle().Foreground(lipgloss.Color("#15803D")),
		TagString:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A21CAF")),
		TagNumber:       lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		TagMatch:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2563EB")),
	}

	if strings.ToLower(mode) == "light" {
		return HighlightTheme{styles: light}
	}
	return HighlightTheme{styles: dark}
}

// Plain returns a theme that renders every tag without styling. It is used
// when syntax highlighting is disabled in the configuration.
func Plain() HighlightTheme {
	plain := lipgloss.NewStyle()
	return HighlightTheme{styles: map[Tag]lipgloss.Style{
		TagNormal: plain,
		TagMatch:  plain.Reverse(true),
	}}
}
