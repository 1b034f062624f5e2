// Package settings resolves seatchat configuration from flags, SEATCHAT_*
// environment variables, an optional config file and a .env file, in that
// order of precedence.
package settings

import (
	"os"
	"strings"
	"time"

	"github.com/go-go-golems/seatchat/pkg/transcript"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "SEATCHAT"
	DefaultBaseURL = "http://localhost:5000"

	ModeAuto = "auto"
	ModeTUI  = "tui"
	ModeLine = "line"
)

type Settings struct {
	BaseURL        string        `mapstructure:"base-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	Mode           string        `mapstructure:"mode"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogFile   string `mapstructure:"log-file"`

	Transcript transcript.Settings `mapstructure:",squash"`
}

// AddFlags registers every setting as a persistent flag on the root command.
func AddFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "Config file (default $HOME/.seatchat/config.yaml)")
	f.String("env-file", ".env", "dotenv file loaded before reading the environment")
	f.String("base-url", DefaultBaseURL, "Base URL of the booking bot")
	f.Duration("request-timeout", 0, "Timeout for each request to the bot (0 disables)")
	f.String("mode", ModeAuto, "Frontend: auto, tui or line")
	f.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text or json)")
	f.String("log-file", "", "Write logs to this file")
	transcript.AddFlags(cmd)
}

// Load reads the settings for cmd. Flags set on the command line win over
// environment variables, which win over the config file.
func Load(cmd *cobra.Command) (*Settings, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, errors.Wrap(err, "env-file flag")
	}
	if envFile != "" {
		if _, statErr := os.Stat(envFile); statErr == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, errors.Wrapf(err, "failed to load %s", envFile)
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.seatchat")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString("config") != "" {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	switch s.Mode {
	case ModeAuto, ModeTUI, ModeLine:
	default:
		return errors.Errorf("unknown mode %q (want auto, tui or line)", s.Mode)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q (want text or json)", s.LogFormat)
	}
	if s.BaseURL == "" {
		return errors.New("base-url must not be empty")
	}
	if s.RequestTimeout < 0 {
		return errors.Errorf("request-timeout must not be negative, got %s", s.RequestTimeout)
	}
	if s.Transcript.Enabled && s.Transcript.Topic == "" {
		return errors.New("transcript-topic must not be empty when redis is enabled")
	}
	return nil
}
