package main

import (
	"fmt"
	"strings"

	"github.com/go-go-golems/seatchat/pkg/lineui"
	"github.com/go-go-golems/seatchat/pkg/markup"
	"github.com/go-go-golems/seatchat/pkg/widget"
	"github.com/spf13/cobra"
)

func newSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send MESSAGE...",
		Short: "Send a single message and print the bot reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			client, err := newClient(s)
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return nil
			}
			reply, err := client.Chat(cmd.Context(), text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup.ToPlain(reply))
			return err
		},
	}
}

func newSeatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seats",
		Short: "Print the seat grid with booked seats marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, cleanup, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			client, err := newClient(s)
			if err != nil {
				return err
			}
			booked, err := client.BookedSeats(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), lineui.FormatSeats(widget.GenerateSeats(booked)))
			return err
		},
	}
}

func newBookingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "Print the bookings for the movie selected in the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, cleanup, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			client, err := newClient(s)
			if err != nil {
				return err
			}
			reply, err := client.ShowBookings(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup.ToPlain(reply))
			return err
		},
	}
}
