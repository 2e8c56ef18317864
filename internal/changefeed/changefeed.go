// Package changefeed turns successful mutations into cache invalidations,
// locally and, through Kafka, on every other API replica.
package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/squadroom/platform/internal/cache"
	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/guard"
)

// Publisher sends an encoded event. *infra.KafkaProducer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// MessageReader yields encoded events. *infra.KafkaConsumer satisfies it.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// KeysFor returns the listings derived from an entity. Attendance listings
// are never cached, so attendance changes invalidate nothing.
func KeysFor(entity string) []cache.Key {
	switch entity {
	case domain.EntityPlayer:
		return []cache.Key{cache.KeyPlayers}
	case domain.EntitySession:
		return []cache.Key{cache.KeySessions}
	default:
		return nil
	}
}

// Broadcaster invalidates the local cache and publishes the change.
type Broadcaster struct {
	origin    string
	listings  *cache.Listings
	publisher Publisher
	logger    *slog.Logger

	breaker    *guard.CircuitBreaker
	breakerKey string
}

// NewBroadcaster creates a Broadcaster. origin identifies this process so
// that its own events are ignored when they come back from the feed.
func NewBroadcaster(origin string, listings *cache.Listings, publisher Publisher, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{origin: origin, listings: listings, publisher: publisher, logger: logger}
}

// WithBreaker stops publishing while the circuit for key is open, so a
// broker outage does not add a write timeout to every mutation.
func (b *Broadcaster) WithBreaker(cb *guard.CircuitBreaker, key string) *Broadcaster {
	b.breaker = cb
	b.breakerKey = key
	return b
}

// Announce records a committed change. Publishing is best effort: the write
// already succeeded, so a broker failure is logged and not returned.
func (b *Broadcaster) Announce(ctx context.Context, evt domain.ChangeEvent) {
	b.listings.Invalidate(KeysFor(evt.Entity)...)

	if b.publisher == nil {
		return
	}
	evt.Origin = b.origin
	payload, err := json.Marshal(evt)
	if err != nil {
		b.logger.Error("encode change event", "error", err, "entity", evt.Entity)
		return
	}
	if b.breaker != nil {
		if res := b.breaker.Check(b.breakerKey); !res.Allowed {
			b.logger.Debug("change event dropped", "reason", res.Reason, "entity", evt.Entity)
			return
		}
	}
	if err := b.publisher.Publish(ctx, partitionKey(evt), payload); err != nil {
		b.logger.Warn("publish change event failed",
			"error", err,
			"entity", evt.Entity,
			"action", evt.Action,
			"id", evt.ID,
		)
		if b.breaker != nil {
			b.breaker.RecordFailure(b.breakerKey)
		}
		return
	}
	if b.breaker != nil {
		b.breaker.RecordSuccess(b.breakerKey)
	}
}

func partitionKey(evt domain.ChangeEvent) []byte {
	if evt.SessionID != 0 {
		return []byte(evt.Entity + ":" + strconv.FormatInt(evt.SessionID, 10))
	}
	return []byte(evt.Entity + ":" + strconv.FormatInt(evt.ID, 10))
}

// Subscriber applies change events from other replicas to the local cache.
type Subscriber struct {
	origin   string
	listings *cache.Listings
	reader   MessageReader
	logger   *slog.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewSubscriber creates a Subscriber.
func NewSubscriber(origin string, listings *cache.Listings, reader MessageReader, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		origin:     origin,
		listings:   listings,
		reader:     reader,
		logger:     logger,
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
}

// WithBackoff sets the retry delay bounds used after a failed read.
func (s *Subscriber) WithBackoff(initial, limit time.Duration) *Subscriber {
	s.minBackoff = initial
	s.maxBackoff = limit
	return s
}

// Run consumes until ctx is cancelled. Undecodable messages are skipped.
// A failed read drops every cached listing, since events may have been
// missed, and is retried with exponential backoff.
func (s *Subscriber) Run(ctx context.Context) error {
	s.logger.Info("change feed subscriber started", "origin", s.origin)
	delay := s.minBackoff
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				s.logger.Info("change feed subscriber stopped")
				return nil
			}
			s.listings.Invalidate(cache.KeyPlayers, cache.KeySessions)
			s.logger.Warn("read change event failed; retrying",
				"error", err,
				"backoff", delay,
			)
			select {
			case <-ctx.Done():
				s.logger.Info("change feed subscriber stopped")
				return nil
			case <-time.After(delay):
			}
			delay = min(delay*2, s.maxBackoff)
			continue
		}
		delay = s.minBackoff
		s.Apply(msg.Value)
	}
}

// Apply decodes one event and invalidates the listings it affects.
// It reports whether anything was invalidated.
func (s *Subscriber) Apply(payload []byte) bool {
	var evt domain.ChangeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		s.logger.Warn("skip malformed change event", "error", err)
		return false
	}
	if evt.Origin == s.origin {
		return false
	}
	keys := KeysFor(evt.Entity)
	if len(keys) == 0 {
		return false
	}
	s.listings.Invalidate(keys...)
	s.logger.Debug("listings invalidated by remote change",
		"entity", evt.Entity,
		"action", evt.Action,
		"origin", evt.Origin,
	)
	return true
}
