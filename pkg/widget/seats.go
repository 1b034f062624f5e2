package widget

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// SeatCount is the number of seats offered by the picker.
const SeatCount = 10

const seatPrefix = "seat_"

// Seat is one button of the seat picker.
type Seat struct {
	ID     string
	Number int
	Booked bool
}

// SeatID returns the identifier for seat n, e.g. "seat_5".
func SeatID(n int) string {
	return fmt.Sprintf("%s%d", seatPrefix, n)
}

// ParseSeatID returns the seat number for an identifier of the form seat_<1..10>.
func ParseSeatID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, seatPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > SeatCount {
		return 0, false
	}
	return n, true
}

// GenerateSeats builds the full seat list, marking every seat whose id is in booked.
func GenerateSeats(booked []string) []Seat {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, id := range booked {
		bookedSet[id] = struct{}{}
	}
	seats := make([]Seat, 0, SeatCount)
	for i := 1; i <= SeatCount; i++ {
		id := SeatID(i)
		_, isBooked := bookedSet[id]
		seats = append(seats, Seat{ID: id, Number: i, Booked: isBooked})
	}
	return seats
}

type ModalState int

const (
	ModalHidden ModalState = iota
	ModalVisible
)

func (s ModalState) String() string {
	switch s {
	case ModalHidden:
		return "hidden"
	case ModalVisible:
		return "visible"
	default:
		return fmt.Sprintf("ModalState(%d)", int(s))
	}
}

// SeatModal tracks whether the seat picker is open and which seats it shows.
type SeatModal struct {
	picker SeatPicker

	mu    sync.Mutex
	state ModalState
	seats []Seat
}

func NewSeatModal(picker SeatPicker) *SeatModal {
	return &SeatModal{picker: picker, state: ModalHidden}
}

func (m *SeatModal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Seats returns a copy of the seats currently on display.
func (m *SeatModal) Seats() []Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Seat, len(m.seats))
	copy(out, m.seats)
	return out
}

// Show regenerates the seats and opens the picker. Calling it while the picker
// is already visible refreshes the seats in place. The picker is drawn under
// the modal lock so overlapping calls cannot leave it showing a stale list.
func (m *SeatModal) Show(booked []string) []Seat {
	seats := GenerateSeats(booked)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seats = seats
	m.state = ModalVisible
	m.picker.ShowSeats(seats)
	return seats
}

// Choose closes the picker if id names an enabled seat that is currently shown.
// Booked seats, unknown ids and a hidden picker leave the state untouched.
func (m *SeatModal) Choose(id string) bool {
	n, ok := ParseSeatID(id)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalVisible || n > len(m.seats) {
		return false
	}
	if s := m.seats[n-1]; s.ID != id || s.Booked {
		return false
	}
	m.hideLocked()
	return true
}

// Dismiss closes the picker without choosing a seat.
func (m *SeatModal) Dismiss() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalVisible {
		return false
	}
	m.hideLocked()
	return true
}

func (m *SeatModal) hideLocked() {
	m.state = ModalHidden
	m.seats = nil
	m.picker.Hide()
}
