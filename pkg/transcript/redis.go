package transcript

import (
	"context"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	rstream "github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisPublisher builds a Redis Streams publisher for the transcript topic.
// The connection is checked up front so a bad address fails at startup instead
// of on the first rendered message. Closing the publisher closes the client.
func NewRedisPublisher(ctx context.Context, s Settings, logger zerolog.Logger) (message.Publisher, error) {
	if !s.Enabled {
		return nil, errors.New("redis transcript is disabled")
	}

	client := redis.NewClient(&redis.Options{Addr: s.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to reach redis at %s", s.Addr)
	}

	pub, err := rstream.NewPublisher(rstream.PublisherConfig{
		Client:     client,
		Marshaller: rstream.DefaultMarshallerUnmarshaller{},
	}, NewWatermillLogger(logger))
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to create redis stream publisher")
	}
	return pub, nil
}

// NewRedisSubscriber returns a Redis Streams subscriber bound to the given consumer group/name.
func NewRedisSubscriber(addr, group, consumer string, logger zerolog.Logger) (message.Subscriber, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	sub, err := rstream.NewSubscriber(rstream.SubscriberConfig{
		Client:        client,
		Unmarshaller:  rstream.DefaultMarshallerUnmarshaller{},
		ConsumerGroup: group,
		Consumer:      consumer,
	}, NewWatermillLogger(logger))
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to create redis stream subscriber")
	}
	return sub, nil
}

// EnsureGroupAtTail creates the consumer group for a stream at the tail ($) if it
// doesn't exist. This prevents full historical replay on first subscribe.
func EnsureGroupAtTail(ctx context.Context, addr, stream, group string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() {
		_ = client.Close()
	}()
	err := client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		// Ignore BUSYGROUP errors (group already exists)
		if strings.Contains(err.Error(), "BUSYGROUP") {
			return nil
		}
		return errors.Wrapf(err, "failed to create consumer group %s on %s", group, stream)
	}
	return nil
}
