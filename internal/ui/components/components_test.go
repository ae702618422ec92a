package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type pickedMsg string

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickedMsg(label) }
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Physics", Disabled: true},
		{Label: "Chemistry", Action: pick("Chemistry")},
		{Label: "Biology", Action: pick("Biology")},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up should not land on a disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil || cmd() != pickedMsg("Biology") {
		t.Error("enter should activate Biology")
	}
}

func TestMenuNumberShortcut(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "One", Action: pick("One")},
		{Label: "Two", Action: pick("Two")},
	})
	m.Numbered = true
	m, cmd := m.Update(runeKey('2'))
	if m.Selected != 1 || cmd == nil || cmd() != pickedMsg("Two") {
		t.Error("2 should select and activate the second item")
	}
	if !strings.Contains(m.View(), "2. Two") {
		t.Errorf("numbered view missing label: %q", m.View())
	}
}

func TestMultiChoiceShortcuts(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, 2)
	mc, _ = mc.Update(runeKey('c'))
	if !mc.Submitted || mc.ChosenIndex != 2 || !mc.IsCorrect() {
		t.Errorf("c should choose option 3, got %+v", mc)
	}

	mc = NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, 2)
	mc, _ = mc.Update(runeKey('1'))
	if mc.ChosenIndex != 0 || mc.IsCorrect() {
		t.Errorf("1 should choose option 1, got %+v", mc)
	}
	mc, _ = mc.Update(runeKey('3'))
	if mc.ChosenIndex != 0 {
		t.Error("a submitted choice must not change")
	}
}

func TestCheckList(t *testing.T) {
	c := NewCheckList([]string{"Physics", "Chemistry", "Biology"}, []string{"Biology"})
	c, _ = c.Update(specialKey(tea.KeySpace))
	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeySpace))

	got := c.Checked()
	if len(got) != 1 || got[0] != "Physics" {
		t.Errorf("Checked() = %v, want [Physics]", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	view := NewProgressBar("", 140, true, 30).View()
	if !strings.Contains(view, "100%") {
		t.Errorf("expected clamp to 100%%, got %q", view)
	}
}
