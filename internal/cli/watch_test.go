package cli

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/host"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

func newTestWatch(t *testing.T) (watchModel, *display.Display) {
	t.Helper()
	ctx := context.Background()
	sys := steno.EnglishStenotype()
	d := newHostDisplay(newLogger(&bytes.Buffer{}, LogInfo), prefs.NewMemory(), geom.Size{})
	d.OnConfigChanged(ctx, display.ConfigFor(sys))
	return newWatchModel(ctx, d, sys), d
}

func send(m watchModel, msgs ...tea.Msg) watchModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(watchModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestWatchTypedChord(t *testing.T) {
	m, d := newTestWatch(t)

	m = send(m, runes("k"), runes("at"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := d.State().Active; !slices.Equal(got, []string{"-T", "A-", "K-"}) {
		t.Errorf("Active = %v, want [-T A- K-]", got)
	}
	if m.input != "" || m.lastChord != "KAT" {
		t.Errorf("input = %q, lastChord = %q", m.input, m.lastChord)
	}
	if !strings.Contains(m.View(), "KAT") {
		t.Error("view should show the last chord")
	}
}

func TestWatchMultiStrokeKeepsLast(t *testing.T) {
	m, d := newTestWatch(t)
	send(m, runes("KAT/-S"), tea.KeyMsg{Type: tea.KeySpace})
	if got := d.State().Active; !slices.Equal(got, []string{"-S"}) {
		t.Errorf("Active = %v, want [-S]", got)
	}
}

func TestWatchBadChord(t *testing.T) {
	m, d := newTestWatch(t)
	m = send(m, runes("XQ"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.failed || m.input != "XQ" {
		t.Errorf("failed = %v, input = %q", m.failed, m.input)
	}
	if got := d.State().Active; len(got) != 0 {
		t.Errorf("Active = %v, want none", got)
	}
}

func TestWatchEditing(t *testing.T) {
	m, _ := newTestWatch(t)
	m = send(m, runes("STK"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.input != "ST" {
		t.Errorf("input = %q, want ST", m.input)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.input != "" {
		t.Errorf("esc should clear input, got %q", m.input)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Error("esc on empty input should quit")
	}
}

func TestWatchResetAndResize(t *testing.T) {
	m, d := newTestWatch(t)
	if err := d.LoadJSON(context.Background(), []byte(`{"name":"Mini","keys":[{"name":"S-"}]}`)); err != nil {
		t.Fatal(err)
	}
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 30}, tea.KeyMsg{Type: tea.KeyCtrlR})
	if d.LayoutName() != "English Stenotype" {
		t.Errorf("LayoutName() = %q after reset", d.LayoutName())
	}
	if m.cols != 120 || m.boardRows() != 24 {
		t.Errorf("cols = %d, boardRows = %d", m.cols, m.boardRows())
	}
	if st := d.State(); st.Viewport != (geom.Size{W: 120, H: 48}) {
		t.Errorf("Viewport = %v", st.Viewport)
	}
}

func TestWatchStreamMessages(t *testing.T) {
	m, _ := newTestWatch(t)
	m.streaming = true

	m = send(m, runes("KAT"))
	if m.input != "" {
		t.Error("typing is ignored while streaming")
	}
	m = send(m, frameMsg{event: host.Event{Type: host.TypeStroke}})
	if m.events != 1 || !strings.Contains(m.status, "stroke") {
		t.Errorf("events = %d, status = %q", m.events, m.status)
	}
	m = send(m, streamDoneMsg{stats: host.Stats{Applied: 3, Skipped: 1}})
	if m.streaming || !strings.Contains(m.status, "3 applied, 1 skipped") {
		t.Errorf("streaming = %v, status = %q", m.streaming, m.status)
	}
}
