// Package tui draws the chat widget in the terminal with bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/seatchat/pkg/markup"
	"github.com/go-go-golems/seatchat/pkg/widget"
)

type surfaceChangedMsg struct{}

type requestDoneMsg struct{}

type copiedMsg struct {
	err error
}

const helpLine = "enter send • ctrl+b bookings • ctrl+y copy • pgup/pgdn scroll • ctrl+c quit"

type Model struct {
	ctx     context.Context
	widget  *widget.Widget
	surface *Surface

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	frame    Frame
	clearGen int
	cursor   int
	pending  int
	status   string

	width  int
	height int
}

func NewModel(ctx context.Context, w *widget.Widget, s *Surface) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message and press Enter"
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

	return Model{
		ctx:      ctx,
		widget:   w,
		surface:  s,
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return surfaceChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.surface.Changed()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh(false)
		return m, nil

	case surfaceChangedMsg:
		cmd := m.applyFrame(m.surface.Flush())
		return m, tea.Batch(cmd, waitForChange(m.surface.Changed()))

	case requestDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "transcript copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status = ""
		if m.frame.SeatsVisible {
			return m.updateSeatPicker(msg)
		}
		switch msg.String() {
		case "enter":
			m.surface.SetValue(m.input.Value())
			return m.startRequest(func(ctx context.Context) {
				m.widget.SendUserMessage(ctx, "")
			})
		case "ctrl+b":
			return m.startRequest(m.widget.ShowBookings)
		case "ctrl+y":
			return m, copyTranscript(m.frame.Lines)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.surface.SetValue(m.input.Value())
	return m, cmd
}

func (m Model) updateSeatPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seats := m.frame.Seats
	switch key := msg.String(); key {
	case "esc":
		m.widget.DismissSeatPicker()
	case "left", "h", "shift+tab":
		m.cursor = moveCursor(seats, m.cursor, -1)
	case "right", "l", "tab":
		m.cursor = moveCursor(seats, m.cursor, 1)
	case "up", "k":
		m.cursor = moveCursor(seats, m.cursor, -seatsPerRow)
	case "down", "j":
		m.cursor = moveCursor(seats, m.cursor, seatsPerRow)
	case "enter", " ":
		if m.cursor < len(seats) {
			return m.selectSeat(seats[m.cursor].ID)
		}
	default:
		if id, ok := seatForKey(key); ok {
			return m.selectSeat(id)
		}
	}
	return m, nil
}

func (m Model) selectSeat(id string) (tea.Model, tea.Cmd) {
	return m.startRequest(func(ctx context.Context) {
		m.widget.SelectSeat(ctx, id)
	})
}

// startRequest runs fn off the update loop; fn may block on the network.
func (m Model) startRequest(fn func(ctx context.Context)) (tea.Model, tea.Cmd) {
	ctx := m.ctx
	m.pending++
	run := func() tea.Msg {
		fn(ctx)
		return requestDoneMsg{}
	}
	if m.pending == 1 {
		return m, tea.Batch(run, m.spinner.Tick)
	}
	return m, run
}

func copyTranscript(lines []string) tea.Cmd {
	return func() tea.Msg {
		plain := make([]string, 0, len(lines))
		for _, l := range lines {
			plain = append(plain, markup.ToPlain(l))
		}
		return copiedMsg{err: clipboard.WriteAll(strings.Join(plain, "\n"))}
	}
}

func (m *Model) applyFrame(f Frame) tea.Cmd {
	wasVisible := m.frame.SeatsVisible
	m.frame = f

	if f.ClearGen != m.clearGen {
		m.clearGen = f.ClearGen
		m.input.Reset()
	}

	var cmd tea.Cmd
	switch {
	case f.SeatsVisible:
		if !wasVisible {
			m.cursor = firstFreeSeat(f.Seats)
		}
		m.input.Blur()
	case wasVisible || f.Focus:
		cmd = m.input.Focus()
	}

	m.layout()
	m.refresh(f.ScrollToEnd)
	return cmd
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, input and footer take one line each
	reserved := 3
	if m.frame.SeatsVisible {
		reserved += lipgloss.Height(renderSeatPicker(m.frame.Seats, m.cursor))
	}
	h := m.height - reserved
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.input.Width = m.width - lipgloss.Width(m.input.Prompt) - 1
}

func (m *Model) refresh(scrollToEnd bool) {
	rendered := make([]string, 0, len(m.frame.Lines))
	for _, l := range m.frame.Lines {
		rendered = append(rendered, markup.Render(l, emphasize))
	}
	content := strings.Join(rendered, "\n")
	if m.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	if scrollToEnd {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	header := headerStyle.Render("seatchat")
	if m.pending > 0 {
		header += " " + m.spinner.View()
	}

	parts := []string{header, m.viewport.View()}
	if m.frame.SeatsVisible {
		parts = append(parts, renderSeatPicker(m.frame.Seats, m.cursor))
	}
	parts = append(parts, m.input.View())
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	} else {
		parts = append(parts, helpStyle.Render(helpLine))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
