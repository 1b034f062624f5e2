package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Run draws the widget until the user quits or ctx is cancelled. In-flight
// requests are cancelled when the program exits.
func Run(ctx context.Context, w *widget.Widget, s *Surface, options ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, options...)
	p := tea.NewProgram(NewModel(ctx, w, s), opts...)

	eg, groupCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			return errors.Wrap(err, "tui program failed")
		}
		log.Debug().Msg("tui program exited")
		return nil
	})
	eg.Go(func() error {
		<-groupCtx.Done()
		p.Quit()
		return nil
	})
	return eg.Wait()
}
