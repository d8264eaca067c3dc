package cli

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testPresets(t *testing.T) []preset.Preset {
	t.Helper()
	return preset.Builtins(rand.New(rand.NewSource(1)))
}

func TestPresetListNavigation(t *testing.T) {
	m := NewPresetListModel(testPresets(t))

	next, _ := m.Update(keyMsg("down"))
	m = next.(PresetListModel)
	next, _ = m.Update(keyMsg("j"))
	m = next.(PresetListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(PresetListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
}

func TestPresetListCursorClamped(t *testing.T) {
	m := NewPresetListModel(testPresets(t))

	next, _ := m.Update(keyMsg("up"))
	m = next.(PresetListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 at top", m.Cursor)
	}

	for i := 0; i < 100; i++ {
		next, _ = m.Update(keyMsg("down"))
		m = next.(PresetListModel)
	}
	if m.Cursor != len(m.Presets)-1 {
		t.Errorf("Cursor = %d, want last index %d", m.Cursor, len(m.Presets)-1)
	}
}

func TestPresetListSelect(t *testing.T) {
	m := NewPresetListModel(testPresets(t))

	next, _ := m.Update(keyMsg("down"))
	m = next.(PresetListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(PresetListModel)

	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if m.Selected == nil {
		t.Fatal("enter should record a selection")
	}
	if m.Selected.Preset.Name != m.Presets[1].Name {
		t.Errorf("selected %q, want %q", m.Selected.Preset.Name, m.Presets[1].Name)
	}
}

func TestPresetListQuitWithoutSelection(t *testing.T) {
	m := NewPresetListModel(testPresets(t))

	next, cmd := m.Update(keyMsg("q"))
	m = next.(PresetListModel)

	if cmd == nil {
		t.Fatal("q should quit the program")
	}
	if m.Selected != nil {
		t.Error("q should not record a selection")
	}
}

func TestPresetListScrollOffset(t *testing.T) {
	m := NewPresetListModel(testPresets(t))
	m.Height = 3

	for i := 0; i < 5; i++ {
		next, _ := m.Update(keyMsg("down"))
		m = next.(PresetListModel)
	}
	if m.Cursor != 5 {
		t.Fatalf("Cursor = %d, want 5", m.Cursor)
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}

	for i := 0; i < 5; i++ {
		next, _ := m.Update(keyMsg("up"))
		m = next.(PresetListModel)
	}
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0 after scrolling back", m.Offset)
	}
}

func TestPresetListViewContainsPresets(t *testing.T) {
	m := NewPresetListModel(testPresets(t))
	view := m.View()

	if !strings.Contains(view, "Select Preset") {
		t.Error("view should contain the title")
	}
	for _, name := range []string{"main", "kims", "gentle"} {
		if !strings.Contains(view, name) {
			t.Errorf("view should list preset %q", name)
		}
	}
}

func TestPresetListWindowResize(t *testing.T) {
	m := NewPresetListModel(testPresets(t))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(PresetListModel)
	if m.Height != 24 {
		t.Errorf("Height = %d, want 24", m.Height)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(PresetListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}
}
