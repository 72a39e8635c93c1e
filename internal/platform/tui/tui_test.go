package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionHardDrop, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"z", runeKey("z"), core.ActionRotateCCW, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"unbound", runeKey("y"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), got, quit, tt.want, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	cases := map[string]MenuAction{
		"k": MenuActionUp,
		"j": MenuActionDown,
		"b": MenuActionBack,
		"q": MenuActionQuit,
		"x": MenuActionNone,
	}
	for s, want := range cases {
		if got := km.MapKeyToMenuAction(runeKey(s)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", s, got, want)
		}
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want MenuActionScoreboard", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, want MenuActionSelect", got)
	}
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) != len(config.DefaultModes().Modes) {
		t.Fatalf("menu has %d items, want %d", len(m.items), len(config.DefaultModes().Modes))
	}
	for _, it := range m.items {
		if it.Description == "" {
			t.Errorf("mode %s has no description", it.GameID)
		}
	}
	if !strings.Contains(m.View(), "D I C E T R I X") {
		t.Error("menu view missing title")
	}
}

func TestMenuSelectWithPreset(t *testing.T) {
	var model tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(enter)
	m := model.(MenuModel)
	if m.presets == nil {
		t.Fatal("expected preset picker after selecting a mode")
	}
	if m.Selected() != nil {
		t.Fatal("mode should not be selected before a preset is picked")
	}

	// Down twice: Mode default -> Easy -> Normal
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(enter)
	m = model.(MenuModel)

	if !isQuit(cmd) {
		t.Error("expected the menu program to finish after picking a preset")
	}
	if m.Selected() == nil || m.Selected().GameID != m.items[1].GameID {
		t.Fatalf("selected = %+v, want %s", m.Selected(), m.items[1].GameID)
	}
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("preset = %q, want %q", m.Preset(), config.DifficultyNormal)
	}
}

func TestMenuPresetBack(t *testing.T) {
	var model tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m := model.(MenuModel)

	if m.presets != nil {
		t.Error("esc should close the preset picker")
	}
	if cmd != nil || m.Selected() != nil || m.IsQuitting() {
		t.Error("esc in the preset picker should return to the mode list")
	}
}

func newTestGameModel(t *testing.T) GameModel {
	t.Helper()
	game, err := dicetrix.Create("easy", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}, "")
	m.Init()
	return m
}

func step(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelPauseThenBack(t *testing.T) {
	m := newTestGameModel(t)
	m, _ = step(t, m, TickMsg{})
	if m.State().GameOver || m.State().Paused {
		t.Fatalf("unexpected state after first tick: %+v", m.State())
	}

	// Esc mid-run pauses rather than leaving
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if isQuit(cmd) || m.BackToMenu() {
		t.Fatal("esc while playing should not leave the game")
	}
	m, _ = step(t, m, TickMsg{})
	if !m.State().Paused {
		t.Fatal("expected paused after esc")
	}

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
	if !isQuit(cmd) {
		t.Error("standalone game model should end its program on back")
	}
}

func TestGameModelEmbeddedBack(t *testing.T) {
	m := newTestGameModel(t)
	m.embedded = true
	m, _ = step(t, m, TickMsg{})
	m, _ = step(t, m, runeKey("p"))
	m, _ = step(t, m, TickMsg{})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("expected back to menu")
	}
	if cmd != nil {
		t.Error("embedded game model must not quit the session program")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGameModel(t)
	m, cmd := step(t, m, runeKey("q"))
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}

func TestGameModelViewHasHelp(t *testing.T) {
	m := newTestGameModel(t)
	m, _ = step(t, m, TickMsg{})
	view := m.View()
	if !strings.Contains(view, "hard drop") {
		t.Error("view should include the key help bar")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	var model tea.Model = NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}, "alice")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	s := model.(SessionModel)
	if s.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if isQuit(cmd) {
		t.Fatal("opening the scoreboard must not end the session")
	}

	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = model.(SessionModel)
	if s.scoreboard != nil {
		t.Error("esc should close the scoreboard")
	}
	if isQuit(cmd) || s.quitting {
		t.Error("closing the scoreboard must not end the session")
	}
}

func TestSessionStartsGame(t *testing.T) {
	var model tea.Model = NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}, "alice")
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	model, _ = model.Update(enter)    // mode
	model, cmd := model.Update(enter) // preset
	s := model.(SessionModel)
	if s.gameModel == nil {
		t.Fatal("expected a running game after picking mode and preset")
	}
	if cmd == nil {
		t.Error("expected the game tick to be scheduled")
	}
	if s.gameModel.player != "alice" {
		t.Errorf("player = %q, want alice", s.gameModel.player)
	}
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "Score")
	s.DrawTextColored(0, 1, " 6", core.ColorBrightRed)
	s.DrawTextColored(2, 1, " *", core.ColorBlack)

	out := RenderScreen(s)
	for _, want := range []string{"Score", " 6", " *"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 rows, got %d newlines", got)
	}
}

func TestScoreboardModes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, score := range []int{120, 4500} {
		if _, err := store.SaveRun(storage.Run{
			Mode:  config.ModeEasy,
			Score: score,
			Seed:  7,
			Stats: core.RunStats{Pieces: 12, Groups: 3, LongestCascade: 2, BestMultiplier: 3},
		}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.modes[m.current].ID != config.ModeEasy {
		t.Fatalf("scoreboard should open on %s, got %s", config.ModeEasy, m.modes[m.current].ID)
	}
	if len(m.runs) != 2 || m.runs[0].Score != 4500 {
		t.Fatalf("runs = %+v, expected best first", m.runs)
	}
	if m.summary == nil || m.summary.GamesCount != 2 {
		t.Fatalf("summary = %+v", m.summary)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "4,500", "2 runs", "seed 7"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.runs) != 0 || m.summary != nil {
		t.Errorf("next mode should have no runs, got %d", len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty mode should show the placeholder")
	}

	prev, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = prev.(ScoreboardModel)
	if m.modes[m.current].ID != config.ModeEasy || len(m.runs) != 2 {
		t.Error("shift+tab should return to the first mode")
	}

	// Wraps backwards to the last mode
	prev, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = prev.(ScoreboardModel)
	if m.current != len(m.modes)-1 {
		t.Errorf("current = %d, expected wrap to %d", m.current, len(m.modes)-1)
	}
}
