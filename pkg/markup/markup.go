// Package markup turns the HTML fragments the widget appends to its panel into
// terminal text. Only the handful of tags the bot emits are understood; other
// tags are dropped and their text kept.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Emphasis decorates bold text. A nil Emphasis leaves the text untouched.
type Emphasis func(string) string

// ToPlain strips the fragment down to its text.
func ToPlain(fragment string) string {
	return Render(fragment, nil)
}

// Render converts fragment to text, passing text inside <b>/<strong> through emph.
func Render(fragment string, emph Emphasis) string {
	w := &writer{emph: emph}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce
			return w.String()
		case html.TextToken:
			w.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			w.open(string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			w.close(string(name))
		}
	}
}

type writer struct {
	sb   strings.Builder
	last byte
	emph Emphasis
	bold int
}

func (w *writer) String() string {
	return strings.TrimRight(w.sb.String(), "\n")
}

func (w *writer) write(s string) {
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.last = s[len(s)-1]
}

func (w *writer) atLineStart() bool {
	return w.sb.Len() == 0 || w.last == '\n'
}

func (w *writer) newline() {
	if !w.atLineStart() {
		w.write("\n")
	}
}

func (w *writer) text(s string) {
	if s == "" {
		return
	}
	if w.bold > 0 && w.emph != nil {
		// style each line separately so a styled run never spans a newline
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			if l != "" {
				lines[i] = w.emph(l)
			}
		}
		s = strings.Join(lines, "\n")
	}
	w.write(s)
}

func (w *writer) open(tag string) {
	switch tag {
	case "b", "strong":
		w.bold++
	case "br":
		w.write("\n")
	case "li":
		w.newline()
		w.write("• ")
	case "p", "div", "ul", "ol":
		w.newline()
	}
}

func (w *writer) close(tag string) {
	switch tag {
	case "b", "strong":
		if w.bold > 0 {
			w.bold--
		}
	case "li", "p", "div", "ul", "ol":
		w.newline()
	}
}
