package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/seatchat/pkg/widget"
)

const seatsPerRow = 5

// firstFreeSeat returns the index of the first seat that is not booked, or 0.
func firstFreeSeat(seats []widget.Seat) int {
	for i, s := range seats {
		if !s.Booked {
			return i
		}
	}
	return 0
}

// moveCursor steps from cur by delta, skipping booked seats. Booked seats are
// inert, so the cursor never rests on one unless every seat is booked.
func moveCursor(seats []widget.Seat, cur, delta int) int {
	n := len(seats)
	if n == 0 {
		return 0
	}
	next := cur
	for i := 0; i < n; i++ {
		next = ((next+delta)%n + n) % n
		if !seats[next].Booked {
			return next
		}
	}
	return cur
}

// seatForKey maps the digit keys 1-9 and 0 (seat 10) to a seat id.
func seatForKey(key string) (string, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return "", false
	}
	n, _ := strconv.Atoi(key)
	if n == 0 {
		n = 10
	}
	return widget.SeatID(n), true
}

func renderSeatPicker(seats []widget.Seat, cursor int) string {
	var rows []string
	var row []string
	for i, s := range seats {
		label := strconv.Itoa(s.Number)
		style := seatStyle
		switch {
		case s.Booked:
			style = seatBookedStyle
		case i == cursor:
			style = seatCursorStyle
		}
		row = append(row, style.Render(label))
		if len(row) == seatsPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		overlayTitleStyle.Render("Choose your seat"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		helpStyle.Render("←/→ move • enter or 1-9/0 pick • esc close"),
	)
	return overlayStyle.Render(body)
}
