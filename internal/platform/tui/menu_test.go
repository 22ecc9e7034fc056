package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func TestMenuItemsListVariantsThenPresets(t *testing.T) {
	presets, err := levels.Builtin().LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	items := MenuItems(presets)

	if len(items) != 4+len(presets) {
		t.Fatalf("expected %d items, got %d", 4+len(presets), len(items))
	}
	if items[0].Setup.ID != "classic" || items[0].Setup.Layout != nil {
		t.Errorf("first item should be the classic variant, got %+v", items[0].Setup)
	}
	last := items[len(items)-1].Setup
	if last.Layout == nil {
		t.Error("presets should carry their layout")
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	m := NewMenuModel(MenuItems(nil), testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != len(m.items)-1 {
		t.Errorf("up from the first item should wrap, cursor=%d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("down from the last item should wrap, cursor=%d", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().Setup.ID != "classic" {
		t.Errorf("expected classic to be selected, got %+v", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should exit the menu program")
	}
}

func TestMenuViewListsBoards(t *testing.T) {
	m := NewMenuModel(MenuItems(nil), testConfig())
	view := m.View()

	for _, want := range []string{"Classic", "Compact", "8x8, 6 colours"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view should mention %q", want)
		}
	}
}

func TestSessionModelFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s := NewSessionModel(store, testConfig(), MenuItems(nil), GameOptions{Store: store})
	update := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.game == nil {
		t.Fatal("selecting a board should start a game")
	}
	if !s.game.embedded {
		t.Error("session games should run embedded")
	}

	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu || s.game != nil {
		t.Fatal("esc should return to the menu")
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenHistory {
		t.Fatal("tab should open the session history")
	}
	if !strings.Contains(s.View(), "No sessions recorded yet") {
		t.Error("empty history should say so")
	}

	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc should leave the history")
	}

	if cmd := update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c in the menu should quit")
	}
	if s.View() != "" {
		t.Error("a quitting session renders nothing")
	}
}

func TestSessionsModelFilters(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, v := range []string{"compact", "classic", "classic"} {
		if _, err := store.SaveSession(storage.Session{Variant: v, Swaps: 2}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewSessionsModel(store, 120, 30)
	if want := []string{"", "classic", "compact"}; strings.Join(m.filters, ",") != strings.Join(want, ",") {
		t.Fatalf("filters = %q, expected %q", m.filters, want)
	}
	if len(m.sessions) != 3 {
		t.Errorf("expected all 3 sessions, got %d", len(m.sessions))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionsModel)
	if len(m.sessions) != 2 {
		t.Errorf("classic filter should show 2 sessions, got %d", len(m.sessions))
	}
	if !strings.Contains(m.View(), "classic") {
		t.Error("view should name the current filter")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(SessionsModel)
	if m.filter != 0 {
		t.Errorf("shift+tab should go back to all boards, filter=%d", m.filter)
	}
}
