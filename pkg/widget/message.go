package widget

import "strings"

// Sender identifies who a rendered line belongs to.
type Sender string

const (
	SenderUser Sender = "You"
	SenderBot  Sender = "Bot"
)

// FallbackWarning is rendered as a bot message whenever a request to the bot fails.
const FallbackWarning = "⚠️ Error communicating with server."

// Message is a single rendered chat line. It is handed to observers and then dropped.
type Message struct {
	Sender      Sender
	Text        string
	AllowMarkup bool
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces the five HTML-significant characters with their entities
// in a single left-to-right pass.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Markup returns the HTML fragment appended to the chat panel for this message.
// Text is escaped unless AllowMarkup is set.
func (m Message) Markup() string {
	text := m.Text
	if !m.AllowMarkup {
		text = EscapeHTML(text)
	}
	return "<strong>" + string(m.Sender) + ":</strong> " + text
}
