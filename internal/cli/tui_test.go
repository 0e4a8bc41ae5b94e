package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackparrish/deskfolio/pkg/site"
)

func testSummaries() []site.CaseSummary {
	return []site.CaseSummary{
		{Slug: "atlas", Title: "Atlas", Role: "Designer"},
		{Slug: "seenit", Title: "SEENIT", Date: "2024"},
		{Slug: "tide", Title: "Tide"},
	}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestCaseListNavigation(t *testing.T) {
	m := press(NewCaseListModel(testSummaries()), "down", "j", "j", "up").(CaseListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	m = press(m, "k", "k", "k").(CaseListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor should stop at 0, got %d", m.Cursor)
	}
}

func TestCaseListSelect(t *testing.T) {
	m := press(NewCaseListModel(testSummaries()), "down", "enter").(CaseListModel)
	if m.Selected == nil {
		t.Fatal("Selected should be set after enter")
	}
	if m.Selected.Slug != "seenit" {
		t.Errorf("Selected = %q, want seenit", m.Selected.Slug)
	}

	m = press(NewCaseListModel(testSummaries()), "q").(CaseListModel)
	if m.Selected != nil {
		t.Error("quitting should not select")
	}
}

func TestCaseListScrolls(t *testing.T) {
	m := NewCaseListModel(testSummaries())
	m.Height = 2

	m = press(m, "down", "down").(CaseListModel)
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	view := m.View()
	if strings.Contains(view, "atlas") {
		t.Error("scrolled view should not show the first row")
	}
	if !strings.Contains(view, "[3/3]") {
		t.Errorf("view should show the position, got:\n%s", view)
	}
}

func TestCaseListEmpty(t *testing.T) {
	m := press(NewCaseListModel(nil), "enter").(CaseListModel)
	if m.Selected != nil {
		t.Error("empty list should not select")
	}
	if !strings.Contains(m.View(), "no published case studies") {
		t.Error("empty view should say so")
	}
}
