package tui

import (
	"sync"

	"github.com/go-go-golems/seatchat/pkg/widget"
)

// Surface is the widget's drawing state. The widget mutates it from worker
// goroutines; the bubbletea model reads it back on every change notification.
type Surface struct {
	mu sync.Mutex

	lines        []string
	scrollToEnd  bool
	input        string
	clearGen     int
	focus        bool
	seatsVisible bool
	seats        []widget.Seat

	changed chan struct{}
}

var _ widget.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{changed: make(chan struct{}, 1)}
}

// Changed yields a value whenever the surface was modified. Notifications are
// coalesced: several changes may produce a single value.
func (s *Surface) Changed() <-chan struct{} {
	return s.changed
}

func (s *Surface) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *Surface) AppendLine(markup string) {
	s.mu.Lock()
	s.lines = append(s.lines, markup)
	s.mu.Unlock()
	s.notify()
}

func (s *Surface) ScrollToEnd() {
	s.mu.Lock()
	s.scrollToEnd = true
	s.mu.Unlock()
	s.notify()
}

func (s *Surface) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetValue mirrors the text field content typed by the user.
func (s *Surface) SetValue(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = v
}

func (s *Surface) Clear() {
	s.mu.Lock()
	s.input = ""
	s.clearGen++
	s.mu.Unlock()
	s.notify()
}

func (s *Surface) Focus() {
	s.mu.Lock()
	s.focus = true
	s.mu.Unlock()
	s.notify()
}

func (s *Surface) ShowSeats(seats []widget.Seat) {
	s.mu.Lock()
	s.seatsVisible = true
	s.seats = append([]widget.Seat(nil), seats...)
	s.mu.Unlock()
	s.notify()
}

func (s *Surface) Hide() {
	s.mu.Lock()
	s.seatsVisible = false
	s.seats = nil
	s.mu.Unlock()
	s.notify()
}

// Frame is a consistent view of the surface.
type Frame struct {
	Lines        []string
	ScrollToEnd  bool
	ClearGen     int
	Focus        bool
	SeatsVisible bool
	Seats        []widget.Seat
}

// Flush returns the current frame and resets the one-shot requests
// (scroll to end, focus).
func (s *Surface) Flush() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := Frame{
		Lines:        append([]string(nil), s.lines...),
		ScrollToEnd:  s.scrollToEnd,
		ClearGen:     s.clearGen,
		Focus:        s.focus,
		SeatsVisible: s.seatsVisible,
		Seats:        append([]widget.Seat(nil), s.seats...),
	}
	s.scrollToEnd = false
	s.focus = false
	return f
}
