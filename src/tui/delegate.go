package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// listRenderingOverhead accounts for the panel border plus the internal
	// padding bubbles/list adds around each row.
	listRenderingOverhead = 10

	keywordWidth = 9
	rangeWidth   = 11
)

// Delegate renders snippet items as single table rows.
type Delegate struct {
	RankWidth int
	styles    *StyleConfig
}

// NewDelegate creates a delegate with default styles.
func NewDelegate() Delegate {
	return Delegate{
		RankWidth: 2,
		styles:    DefaultStyles(),
	}
}

// SetColumnWidths sizes the rank column for the largest rank on screen.
func (d *Delegate) SetColumnWidths(maxRank int) {
	d.RankWidth = len(fmt.Sprintf("%d", maxRank))
	if d.RankWidth < 2 {
		d.RankWidth = 2
	}
}

// Height returns the height of a list item.
func (d Delegate) Height() int { return 1 }

// Spacing returns spacing between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles item updates.
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render renders a single snippet row: rank, line range, trigger keyword and
// a truncated trigger line.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Item)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	rankFmt := fmt.Sprintf("%%%dd", d.RankWidth)
	rankCol := fmt.Sprintf(rankFmt, entry.Rank)
	rangeCol := TruncateAndPad(entry.LineRange(), rangeWidth, false)
	keywordCol := TruncateAndPad(strings.ToUpper(entry.Keyword()), keywordWidth, false)

	fixedWidth := d.RankWidth + rangeWidth + keywordWidth + 9
	availableWidth := m.Width() - fixedWidth - listRenderingOverhead

	var trigger string
	if availableWidth > 0 {
		trigger = TruncateAndPad(CleanLogText(entry.TriggerLine()), availableWidth, true)
	}

	line := fmt.Sprintf("%s │ %s │ %s │ %s", rankCol, rangeCol, keywordCol, trigger)

	style := lipgloss.NewStyle().Foreground(d.styles.TextSecondary)
	if isSelected {
		style = style.Bold(true).Foreground(d.styles.Accent).Background(d.styles.SelectedColor)
	}

	fmt.Fprint(w, style.Render(line))
}
