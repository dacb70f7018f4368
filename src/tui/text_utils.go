package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// VisualWidth returns the display width of text, accounting for multi-byte
// characters.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// CleanLogText strips ANSI escape sequences and control characters so width
// math and rendering operate on printable text only.
func CleanLogText(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\t", "    ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// Truncate truncates text to maxLen visual width with optional ellipsis.
func Truncate(s string, maxLen int, ellipsis bool) string {
	s = strings.TrimSpace(s)
	if maxLen <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxLen {
		return s
	}
	if ellipsis && maxLen > 3 {
		return runewidth.Truncate(s, maxLen-3, "") + "..."
	}
	return runewidth.Truncate(s, maxLen, "")
}

// TruncateAndPad truncates text and pads it to an exact visual width, keeping
// table columns aligned.
func TruncateAndPad(s string, width int, ellipsis bool) string {
	s = Truncate(s, width, ellipsis)
	if w := VisualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Wrap wraps text to the given visual width, breaking on word boundaries.
// Words wider than the limit are split mid-word.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := VisualWidth(word)

		if wordWidth > width {
			if lineWidth > 0 {
				b.WriteString("\n")
				lineWidth = 0
			}
			for word != "" {
				chunk := runewidth.Truncate(word, width, "")
				b.WriteString(chunk)
				word = word[len(chunk):]
				if word != "" {
					b.WriteString("\n")
				}
			}
			continue
		}

		switch {
		case lineWidth == 0:
			b.WriteString(word)
			lineWidth = wordWidth
		case lineWidth+1+wordWidth <= width:
			b.WriteString(" ")
			b.WriteString(word)
			lineWidth += 1 + wordWidth
		default:
			b.WriteString("\n")
			b.WriteString(word)
			lineWidth = wordWidth
		}
	}

	return b.String()
}
