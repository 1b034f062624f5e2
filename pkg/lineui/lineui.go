// Package lineui drives the chat widget over plain line-oriented streams, for
// when stdin or stdout is not a terminal.
//
// Each input line is sent to the bot. While the seat picker is open, a line is
// read as a seat number instead; an empty line closes the picker.
package lineui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/go-go-golems/seatchat/pkg/markup"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/pkg/errors"
)

const (
	CommandQuit     = "/quit"
	CommandBookings = "/bookings"
)

// Frontend implements widget.Surface on top of a reader and a writer.
type Frontend struct {
	in io.Reader

	mu      sync.Mutex
	out     io.Writer
	current string
	picking bool
}

var _ widget.Surface = (*Frontend)(nil)

func New(in io.Reader, out io.Writer) *Frontend {
	return &Frontend{in: in, out: out}
}

func (f *Frontend) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(f.out, format, args...)
}

func (f *Frontend) AppendLine(markupLine string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.printf("%s\n", markup.ToPlain(markupLine))
}

func (f *Frontend) ScrollToEnd() {}

func (f *Frontend) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Frontend) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = ""
}

func (f *Frontend) Focus() {}

func (f *Frontend) ShowSeats(seats []widget.Seat) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picking = true
	f.printf("%s\n", FormatSeats(seats))
	f.printf("Pick a seat number, or an empty line to cancel:\n")
}

func (f *Frontend) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picking = false
}

func (f *Frontend) isPicking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.picking
}

func (f *Frontend) setCurrent(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = line
}

// FormatSeats renders the seats as a single row, booked seats shown as "x".
func FormatSeats(seats []widget.Seat) string {
	cells := make([]string, 0, len(seats))
	for _, s := range seats {
		if s.Booked {
			cells = append(cells, "[ x]")
			continue
		}
		cells = append(cells, fmt.Sprintf("[%2d]", s.Number))
	}
	return strings.Join(cells, " ")
}

// Run reads lines until EOF, /quit or ctx cancellation. The widget should be
// built with widget.RunInline so the picker opens before the next line is read.
func (f *Frontend) Run(ctx context.Context, w *widget.Widget) error {
	scanner := bufio.NewScanner(f.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if f.isPicking() {
			f.pickSeat(ctx, w, trimmed)
			continue
		}

		switch trimmed {
		case CommandQuit:
			return nil
		case CommandBookings:
			w.ShowBookings(ctx)
		default:
			f.setCurrent(line)
			w.SendUserMessage(ctx, "")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read input")
	}
	return nil
}

func (f *Frontend) pickSeat(ctx context.Context, w *widget.Widget, answer string) {
	if answer == "" {
		w.DismissSeatPicker()
		return
	}
	n, ok := widget.ParseSeatID(answer)
	if !ok {
		if v, err := strconv.Atoi(answer); err == nil {
			n, ok = widget.ParseSeatID(widget.SeatID(v))
		}
	}
	if !ok {
		f.mu.Lock()
		f.printf("Enter a number between 1 and %d.\n", widget.SeatCount)
		f.mu.Unlock()
		return
	}
	if !w.SelectSeat(ctx, widget.SeatID(n)) {
		f.mu.Lock()
		f.printf("Seat %d is already booked.\n", n)
		f.mu.Unlock()
	}
}
