package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/registry"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/storage"
)

const maxScores = 100 // Runs loaded per mode

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMode, k.NextMode, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one mode at a time, with the
// mode's aggregates and the highlighted run's details.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	current int
	store   *storage.Store

	runs    []storage.Run
	summary *storage.ModeStats // nil when the mode has no runs

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int

	quitting  bool
	goingBack bool
	embedded  bool // Owned by a session model; back does not quit the program
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Chain", Width: 5},
		{Title: "Cleared", Width: 7},
		{Title: "Player", Width: 10},
		{Title: "When", Width: 14},
	}
	// Spare width goes to the player column
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		cols[4].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)), // tabs, summary, detail, help
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// load fetches runs and aggregates for the current mode.
func (m *ScoreboardModel) load() {
	m.runs, m.summary = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		mode := m.modes[m.current].ID
		if runs, err := m.store.TopScores(mode, maxScores); err != nil {
			logger.Warn("could not load scores", "mode", mode, "err", err)
		} else {
			m.runs = runs
		}
		if ms, err := m.store.GetModeStats(mode); err == nil && ms.GamesCount > 0 {
			m.summary = ms
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			humanize.Comma(int64(r.Score)),
			fmt.Sprint(r.Stats.LongestCascade),
			humanize.Comma(int64(r.Stats.DiceCleared)),
			playerName(r.Player),
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchMode moves the mode cursor by delta, wrapping around.
func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.modes)) % len(m.modes)
	m.load()
}

// playerName labels runs played locally.
func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.newTable()
		m.load()
		m.table.SetCursor(cursor)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.summaryLine()), m.width))
	b.WriteString("\n")

	if len(m.runs) == 0 {
		empty := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(1, 4).
			Render("No runs recorded yet.\nPlay this mode to set a high score!")
		b.WriteString(centerBlock(panelStyle.Render(empty), m.width))
	} else {
		b.WriteString(centerBlock(panelStyle.Render(m.table.View()), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.runDetail()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the mode strip, falling back to "< Title >" when it would
// not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.modes) == 0 {
		return dimStyle.Render("No modes registered")
	}
	parts := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			parts[i] = activeTabStyle.Render(g.ID)
		} else {
			parts[i] = tabStyle.Render(g.ID)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-2 {
		return activeTabStyle.Render("< " + m.modes[m.current].Title + " >")
	}
	return line
}

func (m ScoreboardModel) summaryLine() string {
	if m.summary == nil {
		return ""
	}
	ms := m.summary
	return fmt.Sprintf("%d runs  ·  best %s  ·  avg %s  ·  longest chain %d  ·  last %s",
		ms.GamesCount, humanize.Comma(int64(ms.HighScore)),
		humanize.CommafWithDigits(ms.AvgScore, 0), ms.LongestCascade, humanize.Time(ms.LastPlayed))
}

// runDetail describes the highlighted run beyond what the table shows.
func (m ScoreboardModel) runDetail() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return fmt.Sprintf("seed %d  ·  %d pieces  ·  %d groups  ·  best x%d",
		r.Seed, r.Stats.Pieces, r.Stats.Groups, r.Stats.BestMultiplier)
}

// centerBlock centers every line of a multi-line block as one unit.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	return lipgloss.NewStyle().PaddingLeft(pad).Render(block)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// Returns true if the user wants to go back to the menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
