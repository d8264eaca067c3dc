package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetSelection holds the result of the preset selection.
type PresetSelection struct {
	Preset *preset.Preset
}

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []preset.Preset
	Cursor   int
	Selected *PresetSelection
	Height   int
	Offset   int
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets []preset.Preset) PresetListModel {
	return PresetListModel{
		Presets: presets,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			p := m.Presets[m.Cursor]
			m.Selected = &PresetSelection{Preset: &p}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Presets) {
		end = len(m.Presets)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Presets[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		angle := "-"
		if p.Angle != 0 {
			angle = fmt.Sprintf("%.0f°", p.Angle)
		}
		rows = append(rows, []string{cursor, p.Name, p.Strategy, p.Key, angle, p.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Preset", "Strategy", "Key", "Angle", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return StyleHighlight
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// pickPreset runs the interactive preset picker and returns the selection,
// or nil if the user quit without choosing.
func pickPreset(presets []preset.Preset) (*preset.Preset, error) {
	model := NewPresetListModel(presets)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(PresetListModel); ok && m.Selected != nil {
		return m.Selected.Preset, nil
	}
	return nil, nil
}
