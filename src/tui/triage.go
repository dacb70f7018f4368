// Package tui provides the interactive triage view for analyzed console
// logs. Extracted error snippets are listed on the left; the full snippet
// with its surrounding context is shown in a scrollable panel on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jenkins-distill/src/snippets"
)

// MainModel is the Bubble Tea model for the snippet triage view.
type MainModel struct {
	jobPath string
	buildID string
	logSize int

	items          []Item
	listView       list.Model
	delegate       *Delegate
	detailViewport viewport.Model
	detailFocused  bool
	styles         *StyleConfig

	width  int
	height int
	ready  bool
}

// NewMainModel builds the triage model from extracted snippets. Snippets keep
// their extraction order, which follows log position.
func NewMainModel(jobPath, buildID string, logSize int, snips []snippets.Snippet) MainModel {
	items := make([]Item, len(snips))
	listItems := make([]list.Item, len(snips))
	maxRank := 0
	for i, s := range snips {
		items[i] = Item{Snippet: s, Rank: i + 1}
		listItems[i] = items[i]
		maxRank = i + 1
	}

	delegate := NewDelegate()
	delegate.SetColumnWidths(maxRank)

	l := list.New(listItems, &delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return MainModel{
		jobPath:        jobPath,
		buildID:        buildID,
		logSize:        logSize,
		items:          items,
		listView:       l,
		delegate:       &delegate,
		detailViewport: viewport.New(0, 0),
		styles:         DefaultStyles(),
	}
}

// Init is required by tea.Model.
func (m MainModel) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if !m.detailFocused && len(m.items) > 0 {
				m.detailFocused = true
			}
			return m, nil
		case "esc":
			m.detailFocused = false
			return m, nil
		}

		if m.detailFocused {
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}

		before := m.listView.Index()
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		if m.listView.Index() != before {
			m.refreshDetail()
		}
		return m, cmd
	}

	return m, nil
}

// View renders the split layout: header, list panel beside detail panel,
// help line.
func (m MainModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if len(m.items) == 0 {
		return fmt.Sprintf("\n  No error snippets found in %s build %s.\n  Press q to quit.\n", m.jobPath, m.buildID)
	}

	header := m.renderHeader()
	dims := m.calculateDimensions()

	leftPanel := m.styles.PanelStyle().
		Width(dims.leftWidth).
		Height(dims.panelHeight).
		Render(m.listView.View())

	rightBorder := m.styles.BorderColor
	if m.detailFocused {
		rightBorder = m.styles.AccentDim
	}
	rightPanel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(rightBorder).
		Width(dims.rightWidth).
		Height(dims.panelHeight).
		Render(m.detailViewport.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
	help := m.renderHelpText()

	return lipgloss.JoinVertical(lipgloss.Left, header, main, help)
}

type panelDimensions struct {
	panelHeight int
	leftWidth   int
	rightWidth  int
}

// calculateDimensions centralizes the layout math so render and resize agree.
func (m MainModel) calculateDimensions() panelDimensions {
	// header (1) + help (1) + panel borders (2)
	panelHeight := m.height - 4
	if panelHeight < 4 {
		panelHeight = 4
	}

	leftWidth := int(float64(m.width) * 0.45)
	if leftWidth < 30 {
		leftWidth = 30
	}
	rightWidth := m.width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
	}

	return panelDimensions{
		panelHeight: panelHeight,
		leftWidth:   leftWidth,
		rightWidth:  rightWidth,
	}
}

func (m *MainModel) resizeComponents() {
	dims := m.calculateDimensions()

	m.listView.SetSize(dims.leftWidth-2, dims.panelHeight)

	m.detailViewport.Width = dims.rightWidth - 2
	m.detailViewport.Height = dims.panelHeight
	m.refreshDetail()
}

func (m *MainModel) refreshDetail() {
	if len(m.items) == 0 {
		return
	}
	item, ok := m.listView.SelectedItem().(Item)
	if !ok {
		item = m.items[0]
	}
	m.detailViewport.SetContent(m.renderDetail(item, m.detailViewport.Width-2))
	m.detailViewport.GotoTop()
}

// renderDetail renders the full snippet for the right panel, highlighting
// the lines that carry failure keywords.
func (m MainModel) renderDetail(item Item, maxWidth int) string {
	var content strings.Builder

	header := lipgloss.NewStyle().
		Foreground(m.styles.Accent).
		Bold(true).
		Render(fmt.Sprintf("Snippet %d of %d │ %s", item.Rank, len(m.items), item.LineRange()))
	fmt.Fprintf(&content, "%s\n\n", header)

	contextStyle := lipgloss.NewStyle().Foreground(m.styles.TextSecondary).Faint(true)
	errorStyle := lipgloss.NewStyle().Foreground(m.styles.ErrorColor).Bold(true)

	for _, line := range strings.Split(item.Snippet.Text, "\n") {
		clean := CleanLogText(line)
		wrapped := Wrap(clean, maxWidth)
		if wrapped == "" {
			content.WriteString("\n")
			continue
		}
		style := contextStyle
		if containsKeyword(clean) {
			style = errorStyle
		}
		content.WriteString(style.Render(wrapped))
		content.WriteString("\n")
	}

	return content.String()
}

func containsKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range snippets.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (m MainModel) renderHeader() string {
	title := fmt.Sprintf("jenkins-distill │ %s build %s │ %d snippets │ %d chars",
		m.jobPath, m.buildID, len(m.items), m.logSize)
	return m.styles.TitleStyle().Render(Truncate(title, m.width, true))
}

// renderHelpText renders the context-aware help line.
func (m MainModel) renderHelpText() string {
	keyStyle := lipgloss.NewStyle().Foreground(m.styles.Accent).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(m.styles.TextSecondary)

	var helpText string
	if m.detailFocused {
		helpText = fmt.Sprintf("%s: Scroll %s %s: Back %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("Esc"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	} else {
		helpText = fmt.Sprintf("%s: Navigate %s %s: Focus detail %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("Enter"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	}

	return m.styles.HelpStyle().Render(helpText)
}

// Run starts the triage UI in the alternate screen and blocks until the user
// quits.
func Run(jobPath, buildID string, logSize int, snips []snippets.Snippet) error {
	model := NewMainModel(jobPath, buildID, logSize, snips)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
