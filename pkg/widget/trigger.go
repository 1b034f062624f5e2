package widget

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
)

var seatPromptPattern = regexp.MustCompile(`(?i)choose your seat|seat number`)

// IsSeatPrompt reports whether a bot reply asks the user to pick a seat.
func IsSeatPrompt(text string) bool {
	return seatPromptPattern.MatchString(text)
}

// BookedSeatsQuerier returns the identifiers of seats that are already taken.
type BookedSeatsQuerier interface {
	BookedSeats(ctx context.Context) ([]string, error)
}

// SeatPromptObserver opens the seat picker whenever the bot asks for a seat.
// The booked-seats query runs through async; a failed query opens the picker
// with every seat available.
type SeatPromptObserver struct {
	querier BookedSeatsQuerier
	modal   *SeatModal
	async   func(func())
	logger  zerolog.Logger
}

var _ Observer = (*SeatPromptObserver)(nil)

func NewSeatPromptObserver(querier BookedSeatsQuerier, modal *SeatModal, async func(func()), logger zerolog.Logger) *SeatPromptObserver {
	if async == nil {
		async = RunInGoroutine
	}
	return &SeatPromptObserver{
		querier: querier,
		modal:   modal,
		async:   async,
		logger:  logger,
	}
}

func (o *SeatPromptObserver) OnRender(ctx context.Context, msg Message) {
	if msg.Sender != SenderBot || !IsSeatPrompt(msg.Text) {
		return
	}
	o.async(func() {
		booked, err := o.querier.BookedSeats(ctx)
		if err != nil {
			o.logger.Debug().Err(err).Msg("booked seats query failed, showing all seats as free")
			booked = nil
		}
		o.modal.Show(booked)
	})
}
