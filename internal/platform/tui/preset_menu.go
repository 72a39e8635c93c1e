package tui

import (
	"fmt"
	"strings"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
)

// presetOption is one row of the difficulty preset picker.
type presetOption struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}

var presetOptions = []presetOption{
	{"", "Mode default", "Progression as configured for the mode"},
	{config.DifficultyEasy, "Easy", "Start slow, speed up with score"},
	{config.DifficultyNormal, "Normal", "Start at 30% speed-up"},
	{config.DifficultyHard, "Hard", "Start at 70% speed-up"},
	{config.DifficultyFixed, "Fixed", "No speed-up at all"},
}

// PresetModel lets users choose a difficulty preset for the selected mode.
// It is driven by MenuModel rather than run as its own program.
type PresetModel struct {
	title     string
	cursor    int
	width     int
	height    int
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewPresetModel creates a preset picker for the named mode.
func NewPresetModel(title string, width, height int) PresetModel {
	return PresetModel{
		title:    title,
		width:    width,
		height:   height,
		choosing: true,
	}
}

func (m PresetModel) handleKey(action MenuAction) PresetModel {
	switch action {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(presetOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = presetOptions[m.cursor].preset
	case MenuActionBack:
		m.back = true
	}
	return m
}

// View renders the preset list.
func (m PresetModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range presetOptions {
		cursor := "  "
		line := fmt.Sprintf("%-14s", opt.label)
		if i == m.cursor {
			cursor = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(presetOptions[m.cursor].hint), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Start  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or false if still choosing.
func (m PresetModel) Selected() (config.DifficultyPreset, bool) {
	return m.selection, !m.choosing
}
