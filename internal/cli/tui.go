package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jackparrish/deskfolio/pkg/site"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CaseListModel - Interactive case study selection
// =============================================================================

// CaseListModel is the bubbletea model for picking a case study.
type CaseListModel struct {
	Cases    []site.CaseSummary
	Cursor   int
	Selected *site.CaseSummary
	Height   int
	Offset   int
}

// NewCaseListModel creates a new case study list model.
func NewCaseListModel(cases []site.CaseSummary) CaseListModel {
	return CaseListModel{Cases: cases, Height: 15}
}

func (m CaseListModel) Init() tea.Cmd {
	return nil
}

func (m CaseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Cases)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Cases) == 0 {
				return m, nil
			}
			c := m.Cases[m.Cursor]
			m.Selected = &c
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m CaseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Case Study"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Cases) == 0 {
		b.WriteString(listDimStyle.Render("  no published case studies"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Cases))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Cases[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, c.Slug, c.Title, orDash(c.Role), orDash(c.Date)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Slug", "Title", "Role", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Cases))))

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
