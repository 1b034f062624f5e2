package transcript

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type nopSurface struct{}

func (nopSurface) AppendLine(string) {}
func (nopSurface) ScrollToEnd() {}
func (nopSurface) Value() string { return "" }
func (nopSurface) Clear() {}
func (nopSurface) Focus() {}
func (nopSurface) ShowSeats([]widget.Seat) {}
func (nopSurface) Hide() {}

type echoClient struct{}

func (echoClient) Chat(_ context.Context, message string) (string, error) {
	return "<b>" + message + "</b>", nil
}
func (echoClient) BookedSeats(context.Context) ([]string, error) { return nil, nil }
func (echoClient) ShowBookings(context.Context) (string, error) { return "", nil }

type failingPublisher struct{ published int }

func (p *failingPublisher) Publish(string, ...*message.Message) error {
	p.published++
	return errors.New("redis down")
}
func (p *failingPublisher) Close() error { return nil }

func receive(t *testing.T, ch <-chan *message.Message) Entry {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		e, err := DecodeEntry(msg)
		require.NoError(t, err)
		require.Equal(t, e.SessionID, msg.Metadata.Get("session_id"))
		require.Equal(t, e.Sender, msg.Metadata.Get("sender"))
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transcript entry")
		return Entry{}
	}
}

func TestMirrorPublishesRenderedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, NewWatermillLogger(zerolog.Nop()))
	defer func() {
		_ = pubsub.Close()
	}()
	msgs, err := pubsub.Subscribe(ctx, "transcript")
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mirror := NewMirror(pubsub, "transcript", WithSessionID("s1"), WithClock(func() time.Time { return at }), WithLogger(zerolog.Nop()))
	require.Equal(t, "s1", mirror.SessionID())

	w := widget.New(echoClient{}, nopSurface{},
		widget.WithAsync(widget.RunInline),
		widget.WithLogger(zerolog.Nop()),
		widget.WithObservers(mirror),
	)
	w.SendUserMessage(ctx, "Dune")

	// gochannel delivers each message on its own goroutine, so arrival order is not fixed
	got := []Entry{receive(t, msgs), receive(t, msgs)}
	require.ElementsMatch(t, []Entry{
		{SessionID: "s1", Sender: "You", Text: "Dune", Markup: false, RenderedAt: at},
		{SessionID: "s1", Sender: "Bot", Text: "<b>Dune</b>", Markup: true, RenderedAt: at},
	}, got)
}

func TestMirrorIgnoresPublishFailures(t *testing.T) {
	pub := &failingPublisher{}
	mirror := NewMirror(pub, "transcript", WithLogger(zerolog.Nop()))
	require.NotEmpty(t, mirror.SessionID())

	mirror.OnRender(context.Background(), widget.Message{Sender: widget.SenderBot, Text: "hi"})
	require.Equal(t, 1, pub.published)
	require.NoError(t, mirror.Close())
}

func TestDecodeEntryRejectsGarbage(t *testing.T) {
	_, err := DecodeEntry(message.NewMessage("id", []byte("not json")))
	require.Error(t, err)
}

func TestNewRedisPublisherDisabled(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), Settings{Enabled: false}, zerolog.Nop())
	require.Error(t, err)
}
