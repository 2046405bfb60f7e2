package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"candidature-api/internal/builder"
	"candidature-api/internal/domain"
)

// ErrDraftNotFound is returned when a draft does not exist or has expired.
var ErrDraftNotFound = errors.New("draft not found")

const draftKeyPrefix = "candidature:draft:"

// DraftStore keeps in-progress drafts between requests.
type DraftStore interface {
	Get(ctx context.Context, id string) (*builder.Draft, error)
	Save(ctx context.Context, draft *builder.Draft) error
	Delete(ctx context.Context, id string) error
}

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore stores drafts as JSON under candidature:draft:<id>.
// Every save refreshes the ttl.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &redisDraftStore{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

func (s *redisDraftStore) Get(ctx context.Context, id string) (*builder.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return decodeDraft(data)
}

func (s *redisDraftStore) Save(ctx context.Context, draft *builder.Draft) error {
	data, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryDraftStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryDraftStore keeps drafts in process memory. It is used when redis
// is not configured and in tests.
func NewMemoryDraftStore(ttl time.Duration) DraftStore {
	return &memoryDraftStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *memoryDraftStore) Get(_ context.Context, id string) (*builder.Draft, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.expired(entry) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrDraftNotFound
	}
	return decodeDraft(entry.data)
}

func (s *memoryDraftStore) Save(_ context.Context, draft *builder.Draft) error {
	data, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[draft.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *memoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	delete(s.entries, id)
	if !ok || s.expired(entry) {
		return ErrDraftNotFound
	}
	return nil
}

func (s *memoryDraftStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

// Stored copies are independent of the caller's draft in both stores.
func encodeDraft(draft *builder.Draft) ([]byte, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	return data, nil
}

func decodeDraft(data []byte) (*builder.Draft, error) {
	var draft builder.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if draft.Fields == nil {
		draft.Fields = []domain.Field{}
	}
	return &draft, nil
}
