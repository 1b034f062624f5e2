package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	mu     sync.Mutex
	sent   []string
	reply  string
	booked []string
}

func (c *scriptedClient) Chat(_ context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, message)
	return c.reply, nil
}

func (c *scriptedClient) BookedSeats(context.Context) ([]string, error) {
	return c.booked, nil
}

func (c *scriptedClient) ShowBookings(context.Context) (string, error) {
	return "<b>No movie selected.</b>", nil
}

func newTestModel(client *scriptedClient) (Model, *Surface) {
	s := NewSurface()
	w := widget.New(client, s, widget.WithAsync(widget.RunInline), widget.WithLogger(zerolog.Nop()))
	m := NewModel(context.Background(), w, s)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model), s
}

// drain runs cmd and every command it batches, returning the messages produced.
// Commands waiting on the surface channel are skipped since they would block.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// press sends a key, runs the resulting request (if any) and applies the surface changes.
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	m, cmd := update(t, m, key)
	for _, msg := range drain(cmd) {
		if _, ok := msg.(requestDoneMsg); ok {
			m, _ = update(t, m, msg)
		}
	}
	m, _ = update(t, m, surfaceChangedMsg{})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelSendsTypedText(t *testing.T) {
	client := &scriptedClient{reply: "Which <b>movie</b>?"}
	m, s := newTestModel(client)

	m, _ = update(t, m, runes("Dune"))
	require.Equal(t, "Dune", s.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{"Dune"}, client.sent)
	require.Equal(t, []string{
		"<strong>You:</strong> Dune",
		"<strong>Bot:</strong> Which <b>movie</b>?",
	}, m.frame.Lines)
	require.Equal(t, "", m.input.Value())
	require.Zero(t, m.pending)
	require.Contains(t, m.viewport.View(), "Which movie?")
}

func TestRefreshStylesBoldReplies(t *testing.T) {
	client := &scriptedClient{reply: "<b>Dune</b> at <b>7pm</b><br>Theater A"}
	m, _ := newTestModel(client)

	m, _ = update(t, m, runes("Dune"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.viewport.View()
	require.Contains(t, view, "You: Dune")
	require.Contains(t, view, "Dune at 7pm")
	require.Contains(t, view, "Theater A")
	require.NotContains(t, view, "<b>")
	require.Contains(t, emphasize("Dune"), "Dune")
}

func TestModelBlankEnterSendsNothing(t *testing.T) {
	client := &scriptedClient{reply: "hi"}
	m, _ := newTestModel(client)

	m, _ = update(t, m, runes("   "))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Empty(t, client.sent)
	require.Empty(t, m.frame.Lines)
}

func TestModelSeatPickerFlow(t *testing.T) {
	client := &scriptedClient{reply: "Please choose your seat", booked: []string{"seat_1", "seat_3"}}
	m, _ := newTestModel(client)

	m, _ = update(t, m, runes("7pm"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, m.frame.SeatsVisible)
	require.Len(t, m.frame.Seats, widget.SeatCount)
	require.Equal(t, 1, m.cursor, "cursor starts on the first free seat")
	require.Contains(t, m.View(), "Choose your seat")

	// booked seat is inert
	m = press(t, m, runes("3"))
	require.True(t, m.frame.SeatsVisible)
	require.Equal(t, []string{"7pm"}, client.sent)

	client.reply = "Seat saved."
	m = press(t, m, runes("5"))
	require.False(t, m.frame.SeatsVisible)
	require.Equal(t, []string{"7pm", "seat_5"}, client.sent)
	require.Equal(t, "<strong>You:</strong> seat_5", m.frame.Lines[2])
}

func TestModelSeatPickerCursorAndEnter(t *testing.T) {
	client := &scriptedClient{reply: "seat number?", booked: []string{"seat_2"}}
	m, _ := newTestModel(client)
	m, _ = update(t, m, runes("go"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 0, m.cursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.cursor, "booked seat 2 is skipped")

	client.reply = "ok"
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.frame.SeatsVisible)
	require.Equal(t, "seat_3", client.sent[len(client.sent)-1])
}

func TestModelEscDismissesSeatPicker(t *testing.T) {
	client := &scriptedClient{reply: "choose your seat"}
	m, _ := newTestModel(client)
	m, _ = update(t, m, runes("x"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.frame.SeatsVisible)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.frame.SeatsVisible)
	require.Equal(t, []string{"x"}, client.sent)
}

func TestModelShowBookings(t *testing.T) {
	m, _ := newTestModel(&scriptedClient{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.Equal(t, []string{"<strong>Bot:</strong> <b>No movie selected.</b>"}, m.frame.Lines)
}

func TestMoveCursor(t *testing.T) {
	seats := widget.GenerateSeats([]string{"seat_2", "seat_10"})
	require.Equal(t, 2, moveCursor(seats, 0, 1))
	require.Equal(t, 8, moveCursor(seats, 0, -1))
	require.Equal(t, 5, moveCursor(seats, 0, seatsPerRow))

	all := widget.GenerateSeats([]string{
		"seat_1", "seat_2", "seat_3", "seat_4", "seat_5",
		"seat_6", "seat_7", "seat_8", "seat_9", "seat_10",
	})
	require.Equal(t, 4, moveCursor(all, 4, 1))
	require.Equal(t, 0, firstFreeSeat(all))
}

func TestSeatForKey(t *testing.T) {
	id, ok := seatForKey("0")
	require.True(t, ok)
	require.Equal(t, "seat_10", id)

	id, ok = seatForKey("4")
	require.True(t, ok)
	require.Equal(t, "seat_4", id)

	_, ok = seatForKey("x")
	require.False(t, ok)
}

func TestSurfaceFlushResetsOneShotRequests(t *testing.T) {
	s := NewSurface()
	s.AppendLine("a")
	s.ScrollToEnd()
	s.Focus()
	s.Clear()

	select {
	case <-s.Changed():
	default:
		t.Fatal("expected a change notification")
	}

	f := s.Flush()
	require.Equal(t, []string{"a"}, f.Lines)
	require.True(t, f.ScrollToEnd)
	require.True(t, f.Focus)
	require.Equal(t, 1, f.ClearGen)

	f = s.Flush()
	require.False(t, f.ScrollToEnd)
	require.False(t, f.Focus)
	require.True(t, strings.HasPrefix(f.Lines[0], "a"))
}
