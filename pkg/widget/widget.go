// Package widget implements the chat widget that talks to the movie booking bot.
//
// The widget owns no drawing code. It mutates a Surface (panel, input field and
// seat picker) and frontends decide how that surface ends up on screen.
//
//   - Renderer is the only way messages reach the panel; observers hang off it.
//   - Widget.SendUserMessage is the send pipeline: echo, clear input, POST, render reply.
//   - SeatModal plus SeatPromptObserver implement the seat picker.
package widget

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BotClient is the remote bot as seen by the widget.
type BotClient interface {
	BookedSeatsQuerier
	Chat(ctx context.Context, message string) (string, error)
	ShowBookings(ctx context.Context) (string, error)
}

type Widget struct {
	client   BotClient
	input    Input
	renderer *Renderer
	modal    *SeatModal

	async     func(func())
	logger    zerolog.Logger
	observers []Observer
}

type Option func(*Widget)

// WithAsync sets how the seat prompt observer runs the booked-seats query.
func WithAsync(run func(func())) Option {
	return func(w *Widget) {
		w.async = run
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithObservers registers additional render observers. They run after the
// seat prompt observer, in the order given.
func WithObservers(observers ...Observer) Option {
	return func(w *Widget) {
		w.observers = append(w.observers, observers...)
	}
}

// RunInGoroutine is the default async runner.
func RunInGoroutine(f func()) {
	go f()
}

// RunInline runs f on the caller's goroutine. Sequential frontends use it so
// the seat picker is open before the next line of input is read.
func RunInline(f func()) {
	f()
}

func New(client BotClient, surface Surface, options ...Option) *Widget {
	w := &Widget{
		client: client,
		input:  surface,
		async:  RunInGoroutine,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(w)
	}

	w.renderer = NewRenderer(surface)
	w.modal = NewSeatModal(surface)
	w.renderer.AddObserver(NewSeatPromptObserver(client, w.modal, w.async, w.logger))
	for _, o := range w.observers {
		w.renderer.AddObserver(o)
	}
	return w
}

func (w *Widget) Renderer() *Renderer {
	return w.renderer
}

func (w *Widget) Modal() *SeatModal {
	return w.modal
}

// Render puts a message on the panel through the shared renderer.
func (w *Widget) Render(ctx context.Context, sender Sender, text string, allowMarkup bool) {
	w.renderer.Render(ctx, sender, text, allowMarkup)
}

// SendUserMessage sends explicit, or the trimmed input field content when
// explicit is empty. Blank text is ignored. The call blocks until the bot reply
// (or the fallback warning) has been rendered.
func (w *Widget) SendUserMessage(ctx context.Context, explicit string) {
	text := explicit
	if text == "" {
		text = strings.TrimSpace(w.input.Value())
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	w.Render(ctx, SenderUser, text, false)
	w.input.Clear()
	w.input.Focus()

	reply, err := w.client.Chat(ctx, text)
	if err != nil {
		w.logger.Warn().Err(err).Msg("chat request failed")
		w.Render(ctx, SenderBot, FallbackWarning, false)
		return
	}
	w.Render(ctx, SenderBot, reply, true)
}

// ShowSeatPicker opens the seat picker with the given seats marked as booked.
func (w *Widget) ShowSeatPicker(booked []string) []Seat {
	return w.modal.Show(booked)
}

// SelectSeat closes the picker and sends the seat id as a chat message.
// Selecting a booked seat does nothing and returns false.
func (w *Widget) SelectSeat(ctx context.Context, id string) bool {
	if !w.modal.Choose(id) {
		return false
	}
	w.SendUserMessage(ctx, id)
	return true
}

func (w *Widget) DismissSeatPicker() bool {
	return w.modal.Dismiss()
}

// ShowBookings renders the bookings the bot holds for the current movie.
func (w *Widget) ShowBookings(ctx context.Context) {
	reply, err := w.client.ShowBookings(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("show bookings request failed")
		w.Render(ctx, SenderBot, FallbackWarning, false)
		return
	}
	w.Render(ctx, SenderBot, reply, true)
}
