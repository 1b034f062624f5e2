package widget

import (
	"context"
	"sync"
)

// Observer is notified after a message has been appended to the panel.
type Observer interface {
	OnRender(ctx context.Context, msg Message)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx context.Context, msg Message)

func (f ObserverFunc) OnRender(ctx context.Context, msg Message) {
	f(ctx, msg)
}

// Renderer is the single entry point for putting messages on the panel.
// Observers run in registration order after every append, whichever code path
// triggered the render.
type Renderer struct {
	panel Panel

	mu        sync.RWMutex
	observers []Observer
}

func NewRenderer(panel Panel) *Renderer {
	return &Renderer{panel: panel}
}

func (r *Renderer) AddObserver(o Observer) {
	if o == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Render appends the message to the panel, scrolls to the end and notifies observers.
func (r *Renderer) Render(ctx context.Context, sender Sender, text string, allowMarkup bool) {
	msg := Message{Sender: sender, Text: text, AllowMarkup: allowMarkup}
	r.panel.AppendLine(msg.Markup())
	r.panel.ScrollToEnd()

	r.mu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, o := range observers {
		o.OnRender(ctx, msg)
	}
}
