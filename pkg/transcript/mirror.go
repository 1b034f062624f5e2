// Package transcript mirrors rendered chat messages onto a watermill topic so
// other processes can follow a booking conversation.
package transcript

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Entry is the payload of one transcript message.
type Entry struct {
	SessionID  string    `json:"session_id"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	Markup     bool      `json:"markup"`
	RenderedAt time.Time `json:"rendered_at"`
}

// DecodeEntry parses a transcript message payload.
func DecodeEntry(msg *message.Message) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return Entry{}, errors.Wrapf(err, "invalid transcript payload in message %s", msg.UUID)
	}
	return e, nil
}

// Mirror is a render observer publishing every message it sees.
// Publishing failures are logged and otherwise ignored.
type Mirror struct {
	publisher message.Publisher
	topic     string
	sessionID string
	now       func() time.Time
	logger    zerolog.Logger
}

var _ widget.Observer = (*Mirror)(nil)

type MirrorOption func(*Mirror)

func WithSessionID(id string) MirrorOption {
	return func(m *Mirror) {
		m.sessionID = id
	}
}

func WithClock(now func() time.Time) MirrorOption {
	return func(m *Mirror) {
		m.now = now
	}
}

func WithLogger(logger zerolog.Logger) MirrorOption {
	return func(m *Mirror) {
		m.logger = logger
	}
}

func NewMirror(publisher message.Publisher, topic string, options ...MirrorOption) *Mirror {
	m := &Mirror{
		publisher: publisher,
		topic:     topic,
		sessionID: uuid.NewString(),
		now:       time.Now,
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Mirror) SessionID() string {
	return m.sessionID
}

func (m *Mirror) OnRender(ctx context.Context, msg widget.Message) {
	payload, err := json.Marshal(Entry{
		SessionID:  m.sessionID,
		Sender:     string(msg.Sender),
		Text:       msg.Text,
		Markup:     msg.AllowMarkup,
		RenderedAt: m.now().UTC(),
	})
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to encode transcript entry")
		return
	}

	wm := message.NewMessage(watermill.NewUUID(), payload)
	wm.Metadata.Set("session_id", m.sessionID)
	wm.Metadata.Set("sender", string(msg.Sender))
	wm.SetContext(ctx)

	if err := m.publisher.Publish(m.topic, wm); err != nil {
		m.logger.Warn().Err(err).Str("topic", m.topic).Msg("failed to publish transcript entry")
	}
}

func (m *Mirror) Close() error {
	return m.publisher.Close()
}
