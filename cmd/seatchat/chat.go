package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-go-golems/seatchat/pkg/lineui"
	"github.com/go-go-golems/seatchat/pkg/settings"
	"github.com/go-go-golems/seatchat/pkg/transcript"
	"github.com/go-go-golems/seatchat/pkg/tui"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the booking bot (default command)",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveMode picks the frontend. auto uses the TUI only when both stdin and
// stdout are terminals.
func resolveMode(mode string, stdinTTY, stdoutTTY bool) string {
	if mode != settings.ModeAuto {
		return mode
	}
	if stdinTTY && stdoutTTY {
		return settings.ModeTUI
	}
	return settings.ModeLine
}

func runChat(cmd *cobra.Command, _ []string) error {
	s, err := settings.Load(cmd)
	if err != nil {
		return err
	}
	mode := resolveMode(s.Mode, isTerminal(os.Stdin), isTerminal(os.Stdout))

	closer, err := settings.InitLogger(s, mode == settings.ModeTUI)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	client, err := newClient(s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := []widget.Option{widget.WithLogger(log.Logger)}
	if s.Transcript.Enabled {
		mirror, err := newMirror(ctx, s)
		if err != nil {
			return err
		}
		defer func() {
			if err := mirror.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close transcript publisher")
			}
		}()
		options = append(options, widget.WithObservers(mirror))
	}

	log.Info().Str("mode", mode).Str("base_url", s.BaseURL).Msg("starting chat")

	switch mode {
	case settings.ModeTUI:
		surface := tui.NewSurface()
		w := widget.New(client, surface, options...)
		return tui.Run(ctx, w, surface)
	default:
		fe := lineui.New(os.Stdin, os.Stdout)
		w := widget.New(client, fe, append(options, widget.WithAsync(widget.RunInline))...)
		return fe.Run(ctx, w)
	}
}

func newMirror(ctx context.Context, s *settings.Settings) (*transcript.Mirror, error) {
	pub, err := transcript.NewRedisPublisher(ctx, s.Transcript, log.Logger)
	if err != nil {
		return nil, err
	}
	mirror := transcript.NewMirror(pub, s.Transcript.Topic, transcript.WithLogger(log.Logger))
	log.Info().
		Str("topic", s.Transcript.Topic).
		Str("session_id", mirror.SessionID()).
		Msg("mirroring transcript to redis")
	return mirror, nil
}
