package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-go-golems/seatchat/pkg/markup"
	"github.com/go-go-golems/seatchat/pkg/transcript"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTranscriptCommand() *cobra.Command {
	var group, consumer string
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Follow the transcript other seatchat sessions mirror to redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, cleanup, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if consumer == "" {
				consumer = "tail-" + uuid.NewString()[:8]
			}
			if err := transcript.EnsureGroupAtTail(ctx, s.Transcript.Addr, s.Transcript.Topic, group); err != nil {
				return err
			}
			sub, err := transcript.NewRedisSubscriber(s.Transcript.Addr, group, consumer, log.Logger)
			if err != nil {
				return err
			}
			defer func() {
				_ = sub.Close()
			}()

			msgs, err := sub.Subscribe(ctx, s.Transcript.Topic)
			if err != nil {
				return errors.Wrapf(err, "failed to subscribe to %s", s.Transcript.Topic)
			}
			out := cmd.OutOrStdout()
			for msg := range msgs {
				e, err := transcript.DecodeEntry(msg)
				msg.Ack()
				if err != nil {
					log.Warn().Err(err).Msg("skipping transcript message")
					continue
				}
				text := e.Text
				if e.Markup {
					text = markup.ToPlain(text)
				}
				_, _ = fmt.Fprintf(out, "%s [%s] %s: %s\n",
					e.RenderedAt.Local().Format("15:04:05"), e.SessionID[:min(8, len(e.SessionID))], e.Sender, text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "seatchat-transcript", "Redis consumer group")
	cmd.Flags().StringVar(&consumer, "consumer", "", "Redis consumer name (default: random)")
	return cmd
}
