package transcript

import "github.com/spf13/cobra"

// Settings holds the Redis Streams transport configuration for the transcript mirror.
type Settings struct {
	Enabled bool   `mapstructure:"redis-enabled"`
	Addr    string `mapstructure:"redis-addr"`
	Topic   string `mapstructure:"transcript-topic"`
}

const (
	DefaultAddr  = "localhost:6379"
	DefaultTopic = "seatchat.transcript"
)

// AddFlags registers the transcript flags on cmd.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("redis-enabled", false, "Mirror rendered messages to a Redis stream")
	cmd.PersistentFlags().String("redis-addr", DefaultAddr, "Redis address host:port")
	cmd.PersistentFlags().String("transcript-topic", DefaultTopic, "Redis stream receiving the transcript")
}
