// Package realtime fans out submission events to live feed subscribers.
package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

const subscriberBuffer = 64

// Channel is the pub/sub channel of a candidature's submission events.
func Channel(candidatureID string) string {
	return fmt.Sprintf("candidature:%s:submissions", candidatureID)
}

// Subscription delivers the payloads published on one channel until closed.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Hub publishes and subscribes to per-candidature events.
type Hub interface {
	Publish(ctx context.Context, candidatureID string, payload []byte) error
	Subscribe(ctx context.Context, candidatureID string) (Subscription, error)
}

type redisHub struct {
	client *redis.Client
}

// NewRedisHub returns a Hub backed by redis pub/sub, shared by every replica.
func NewRedisHub(client *redis.Client) Hub {
	return &redisHub{client: client}
}

func (h *redisHub) Publish(ctx context.Context, candidatureID string, payload []byte) error {
	return h.client.Publish(ctx, Channel(candidatureID), payload).Err()
}

func (h *redisHub) Subscribe(ctx context.Context, candidatureID string) (Subscription, error) {
	pubsub := h.client.Subscribe(ctx, Channel(candidatureID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	sub := &redisSubscription{pubsub: pubsub, out: make(chan []byte, subscriberBuffer), done: make(chan struct{})}
	go sub.forward()
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	out    chan []byte
	done   chan struct{}
	once   sync.Once
}

func (s *redisSubscription) forward() {
	defer close(s.out)
	for msg := range s.pubsub.Channel() {
		select {
		case s.out <- []byte(msg.Payload):
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Messages() <-chan []byte { return s.out }

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

// localHub is an in-process Hub for single-instance deployments and tests.
type localHub struct {
	mu   sync.RWMutex
	subs map[string]map[*localSubscription]struct{}
}

// NewLocalHub returns an in-process Hub.
func NewLocalHub() Hub {
	return &localHub{subs: make(map[string]map[*localSubscription]struct{})}
}

// Publish never blocks: a subscriber with a full buffer misses the event.
func (h *localHub) Publish(_ context.Context, candidatureID string, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[candidatureID] {
		msg := append([]byte(nil), payload...)
		select {
		case sub.out <- msg:
		default:
		}
	}
	return nil
}

func (h *localHub) Subscribe(_ context.Context, candidatureID string) (Subscription, error) {
	sub := &localSubscription{hub: h, id: candidatureID, out: make(chan []byte, subscriberBuffer)}
	h.mu.Lock()
	if h.subs[candidatureID] == nil {
		h.subs[candidatureID] = make(map[*localSubscription]struct{})
	}
	h.subs[candidatureID][sub] = struct{}{}
	h.mu.Unlock()
	return sub, nil
}

func (h *localHub) remove(sub *localSubscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subs[sub.id]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.out)
	if len(subs) == 0 {
		delete(h.subs, sub.id)
	}
}

type localSubscription struct {
	hub *localHub
	id  string
	out chan []byte
}

func (s *localSubscription) Messages() <-chan []byte { return s.out }

func (s *localSubscription) Close() error {
	s.hub.remove(s)
	return nil
}
