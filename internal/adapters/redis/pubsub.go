package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/janasethu/civic-api/internal/domain/realtime"
)

// PubSub bridges Redis pub/sub to the realtime notifier. Publish fans an
// event out across instances; WaitForMessage blocks on the channel for one
// topic. It implements ports.Publisher and realtime.Waiter.
type PubSub struct {
	client redis.UniversalClient
	prefix string

	mu   sync.Mutex
	subs map[realtime.Topic]*redis.PubSub
}

// NewPubSub creates a Redis pub/sub bridge with the default channel prefix.
func NewPubSub(client redis.UniversalClient) *PubSub {
	return &PubSub{
		client: client,
		prefix: "events:",
		subs:   make(map[realtime.Topic]*redis.PubSub),
	}
}

func (p *PubSub) channel(topic string) string {
	return p.prefix + topic
}

// Publish sends payload to every instance subscribed to topic.
func (p *PubSub) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := p.client.Publish(ctx, p.channel(topic), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", topic, err)
	}
	return nil
}

// WaitForMessage blocks until the next message on topic or ctx expiry.
// The underlying subscription is created lazily and reused across calls.
func (p *PubSub) WaitForMessage(ctx context.Context, topic realtime.Topic) ([]byte, error) {
	sub := p.subscription(topic)

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("redis receive %s: %w", topic, err)
	}
	return []byte(msg.Payload), nil
}

func (p *PubSub) subscription(topic realtime.Topic) *redis.PubSub {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sub, ok := p.subs[topic]; ok {
		return sub
	}
	sub := p.client.Subscribe(context.Background(), p.channel(string(topic)))
	p.subs[topic] = sub
	return sub
}

// Close tears down all subscriptions.
func (p *PubSub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, sub := range p.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.subs, topic)
	}
	return firstErr
}
