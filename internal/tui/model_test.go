package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/datefmt"
	"github.com/lululau/calview/internal/picker"
)

func newTestModel(t *testing.T, cfg picker.Config) model {
	t.Helper()
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := calendar.NewService(calendar.WithNow(func() time.Time { return now }))
	return newModel(picker.New(svc, cfg), Options{})
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterOpensPopupAndBindsField(t *testing.T) {
	m := newTestModel(t, picker.Config{})
	if m.input.Value() != "2024-03-15" {
		t.Fatalf("expected field prefilled, got %q", m.input.Value())
	}
	m.input.SetValue("2023-12-25")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.open {
		t.Fatalf("expected popup to open")
	}
	if got := m.picker.Text(); got != "2023-12-25" {
		t.Fatalf("picker not bound to field, got %q", got)
	}
	if !strings.Contains(m.View(), "December 2023") {
		t.Fatalf("expected December 2023 in view:\n%s", m.View())
	}
}

func TestPopupKeysWriteBack(t *testing.T) {
	m := newTestModel(t, picker.Config{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"next month", runes("]"), "2024-04-15"},
		{"next day", runes("l"), "2024-04-16"},
		{"next week", tea.KeyMsg{Type: tea.KeyDown}, "2024-04-23"},
		{"previous year", runes("{"), "2023-04-23"},
		{"today", runes("t"), "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m = press(t, m, tt.key)
			if got := m.input.Value(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if !m.open {
				t.Fatalf("popup should stay open")
			}
		})
	}
}

func TestEnterInPopupPicksAndCloses(t *testing.T) {
	m := newTestModel(t, picker.Config{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("h"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.open {
		t.Fatalf("expected popup to close after picking")
	}
	if got := m.input.Value(); got != "2024-03-14" {
		t.Fatalf("expected 2024-03-14, got %q", got)
	}
}

func TestEscClosesWithoutChange(t *testing.T) {
	m := newTestModel(t, picker.Config{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.open || m.input.Value() != "2024-03-15" {
		t.Fatalf("unexpected state open=%v value=%q", m.open, m.input.Value())
	}
}

func TestClockKeys(t *testing.T) {
	m := newTestModel(t, picker.Config{WithTime: true, Pattern: datefmt.Compile("%Y-%m-%d %H:%M")})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("+"), runes(">"), runes(">"))
	if got := m.input.Value(); got != "2024-03-15 10:32" {
		t.Fatalf("expected 2024-03-15 10:32, got %q", got)
	}
	m = press(t, m, runes("-"), runes("<"))
	if got := m.input.Value(); got != "2024-03-15 09:31" {
		t.Fatalf("expected 2024-03-15 09:31, got %q", got)
	}
}

func TestRangeBoundaryStatus(t *testing.T) {
	m := newTestModel(t, picker.Config{MinYear: 2024, MaxYear: 2024})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("{"))
	if m.statusMsg == "" {
		t.Fatalf("expected boundary status message")
	}
	if m.input.Value() != "2024-03-15" {
		t.Fatalf("value should not change, got %q", m.input.Value())
	}
}
