package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Deduper suppresses replayed webhook deliveries with a Redis SETNX window.
// It fails open: a Redis outage must not make the bot stop answering, the
// database-level message dedupe still catches exact repeats.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewDeduper(redisURL string, log zerolog.Logger) (*Deduper, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Deduper{
		client: redis.NewClient(opts),
		ttl:    24 * time.Hour,
		log:    log,
	}, nil
}

// SeenOrMark returns true when the key was already marked within the TTL.
func (d *Deduper) SeenOrMark(ctx context.Context, key string) bool {
	ok, err := d.client.SetNX(ctx, "seen:"+key, 1, d.ttl).Result()
	if err != nil {
		d.log.Warn().Err(err).Str("key", key).Msg("dedupe check failed, allowing event")
		return false
	}
	return !ok
}

func (d *Deduper) Close() error {
	return d.client.Close()
}
