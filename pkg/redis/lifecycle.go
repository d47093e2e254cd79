package redis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrUnavailable
		}
		pong, err := client.Ping(ctx).Result()
		if err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		if pong != "PONG" {
			return fmt.Errorf("%w: unexpected ping reply %q", ErrUnavailable, pong)
		}
		return nil
	}
}

// Shutdown returns a hook that closes the client when the server stops.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
