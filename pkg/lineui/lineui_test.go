package lineui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type replyClient struct {
	sent    []string
	replies map[string]string
	booked  []string
	fail    bool
}

func (c *replyClient) Chat(_ context.Context, message string) (string, error) {
	c.sent = append(c.sent, message)
	if c.fail {
		return "", errors.New("connection refused")
	}
	return c.replies[message], nil
}

func (c *replyClient) BookedSeats(context.Context) ([]string, error) {
	return c.booked, nil
}

func (c *replyClient) ShowBookings(context.Context) (string, error) {
	return "<b>Bookings for Dune:</b><br><ul><li>Seat: seat_4</li></ul>", nil
}

func run(t *testing.T, client *replyClient, input string) string {
	t.Helper()
	var out bytes.Buffer
	fe := New(strings.NewReader(input), &out)
	w := widget.New(client, fe, widget.WithAsync(widget.RunInline), widget.WithLogger(zerolog.Nop()))
	require.NoError(t, fe.Run(context.Background(), w))
	return out.String()
}

func TestRunConversationWithSeatPick(t *testing.T) {
	client := &replyClient{
		replies: map[string]string{
			"Dune":   "<b>Dune</b> it is. Please choose your seat.",
			"seat_5": "Seat <b>seat_5</b> saved. Confirm?",
		},
		booked: []string{"seat_3"},
	}

	out := run(t, client, "Dune\n3\n42\n5\n")

	require.Equal(t, []string{"Dune", "seat_5"}, client.sent)
	require.Equal(t, strings.Join([]string{
		"You: Dune",
		"Bot: Dune it is. Please choose your seat.",
		"[ 1] [ 2] [ x] [ 4] [ 5] [ 6] [ 7] [ 8] [ 9] [10]",
		"Pick a seat number, or an empty line to cancel:",
		"Seat 3 is already booked.",
		"Enter a number between 1 and 10.",
		"You: seat_5",
		"Bot: Seat seat_5 saved. Confirm?",
		"",
	}, "\n"), out)
}

func TestRunAcceptsSeatIdentifiers(t *testing.T) {
	client := &replyClient{
		replies: map[string]string{"Dune": "Please choose your seat."},
		booked:  []string{"seat_3"},
	}

	out := run(t, client, "Dune\nseat_3\nseat_11\nseat_7\n")

	require.Equal(t, []string{"Dune", "seat_7"}, client.sent)
	require.Contains(t, out, "Seat 3 is already booked.\n")
	require.Contains(t, out, "Enter a number between 1 and 10.\n")
}

func TestRunEmptyLineCancelsPicker(t *testing.T) {
	client := &replyClient{replies: map[string]string{"hi": "seat number please", "5": "ok"}}

	out := run(t, client, "hi\n\n5\n")

	// after cancelling, "5" is an ordinary chat message
	require.Equal(t, []string{"hi", "5"}, client.sent)
	require.Contains(t, out, "You: 5\n")
}

func TestRunEscapesUserText(t *testing.T) {
	client := &replyClient{replies: map[string]string{}}

	out := run(t, client, "<b>not bold</b> & more\n")

	require.Contains(t, out, "You: <b>not bold</b> & more\n")
}

func TestRunSkipsBlankLinesAndQuits(t *testing.T) {
	client := &replyClient{replies: map[string]string{"a": "b"}}

	out := run(t, client, "   \n\na\n/quit\nnever\n")

	require.Equal(t, []string{"a"}, client.sent)
	require.Equal(t, "You: a\nBot: b\n", out)
}

func TestRunFailureAndBookings(t *testing.T) {
	client := &replyClient{fail: true}

	out := run(t, client, "hello\n/bookings\n")

	require.Equal(t, strings.Join([]string{
		"You: hello",
		"Bot: " + widget.FallbackWarning,
		"Bot: Bookings for Dune:",
		"• Seat: seat_4",
		"",
	}, "\n"), out)
}
