package widget

// Panel is the scrolling message list. Lines are HTML fragments and are only
// ever appended.
type Panel interface {
	AppendLine(markup string)
	ScrollToEnd()
}

// Input is the text field the user types into.
type Input interface {
	Value() string
	Clear()
	Focus()
}

// SeatPicker is the overlay hosting the seat buttons.
type SeatPicker interface {
	ShowSeats(seats []Seat)
	Hide()
}

// Surface groups everything a frontend has to draw for the widget.
// Implementations must be safe for use from multiple goroutines.
type Surface interface {
	Panel
	Input
	SeatPicker
}
