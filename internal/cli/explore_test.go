package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(m exploreModel, text string) exploreModel {
	for _, r := range text {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		}
		next, _ := m.Update(msg)
		m = next.(exploreModel)
	}
	return m
}

func TestExploreModelLiveMatch(t *testing.T) {
	m := newExploreModel("{n:d}", "", nil)
	if m.compiled == nil {
		t.Fatal("initial format not compiled")
	}

	// Switch focus to the text input and type a number.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(exploreModel)
	if m.focus != focusText {
		t.Fatalf("focus = %d after tab, want text", m.focus)
	}

	m = typeRunes(m, "42")
	if len(m.results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(m.results))
	}
	if got := m.results[0].Named["n"]; got != int64(42) {
		t.Errorf("n = %v, want int64(42)", got)
	}

	view := m.View()
	if !strings.Contains(view, "42") {
		t.Errorf("View() missing matched value:\n%s", view)
	}
}

func TestExploreModelCompileError(t *testing.T) {
	m := newExploreModel("{unclosed", "x", nil)

	if m.compileErr == nil {
		t.Fatal("compileErr not set for invalid format")
	}
	if m.results != nil {
		t.Error("results set despite compile error")
	}
	if !strings.Contains(m.View(), "INVALID_FORMAT") {
		t.Errorf("View() does not surface the compile error:\n%s", m.View())
	}
}

func TestExploreModelBackspace(t *testing.T) {
	m := newExploreModel("{n:d}", "", nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(exploreModel)
	m = typeRunes(m, "42")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(exploreModel)
	if m.text != "4" {
		t.Errorf("text = %q after backspace, want 4", m.text)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(exploreModel)
	if m.text != "" {
		t.Errorf("text = %q after ctrl+u, want empty", m.text)
	}
}

func TestExploreModelModeCycle(t *testing.T) {
	m := newExploreModel("{n:d}", "a 1 b 2", nil)
	if len(m.results) != 0 {
		t.Fatal("parse mode matched non-conforming text")
	}

	// findall finds both numbers.
	for i := 0; i < 2; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
		m = next.(exploreModel)
	}
	if exploreModes[m.mode] != "findall" {
		t.Fatalf("mode = %q after two cycles, want findall", exploreModes[m.mode])
	}
	if len(m.results) != 2 {
		t.Errorf("len(results) = %d in findall mode, want 2", len(m.results))
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newExploreModel("", "", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc did not produce a command")
	}
	if msg := cmd(); msg == nil {
		t.Error("esc command returned nil message")
	}
}
