package main

import (
	"os"

	"github.com/go-go-golems/seatchat/pkg/botclient"
	"github.com/go-go-golems/seatchat/pkg/settings"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seatchat",
	Short: "seatchat is a terminal client for the movie booking bot",
	Long: `seatchat chats with the movie booking bot and opens a seat picker
whenever the bot asks you to choose a seat.

Settings come from flags, SEATCHAT_* environment variables, a .env file
and $HOME/.seatchat/config.yaml.`,
	SilenceUsage: true,
	RunE:         runChat,
}

func main() {
	settings.AddFlags(rootCmd)
	rootCmd.AddCommand(
		newChatCommand(),
		newSendCommand(),
		newSeatsCommand(),
		newBookingsCommand(),
		newTranscriptCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the settings and initializes logging. quiet discards logs unless
// a log file is configured.
func setup(cmd *cobra.Command, quiet bool) (*settings.Settings, func(), error) {
	s, err := settings.Load(cmd)
	if err != nil {
		return nil, nil, err
	}
	closer, err := settings.InitLogger(s, quiet)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close log file")
		}
	}
	return s, cleanup, nil
}

func newClient(s *settings.Settings) (*botclient.Client, error) {
	c, err := botclient.New(s.BaseURL,
		botclient.WithTimeout(s.RequestTimeout),
		botclient.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create bot client")
	}
	return c, nil
}
