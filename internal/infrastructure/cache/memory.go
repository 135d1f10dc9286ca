package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process lock store with expiration.
// Expired entries are swept lazily on acquire.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*memoryItem
	now   func() time.Time
}

type memoryItem struct {
	token      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory lock store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
	}
}

// Acquire takes key for ttl. ok is false when another holder has it.
func (ms *MemoryStore) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for k, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, k)
		}
	}

	if _, held := ms.items[key]; held {
		return "", false, nil
	}

	token := uuid.NewString()
	ms.items[key] = &memoryItem{token: token, expireTime: now.Add(ttl)}
	return token, true, nil
}

// Release frees key if token still owns it
func (ms *MemoryStore) Release(ctx context.Context, key, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if item, ok := ms.items[key]; ok && item.token == token {
		delete(ms.items, key)
	}
	return nil
}

// Refresh pushes the expiry of key out by ttl. ok is false once token no longer owns it.
func (ms *MemoryStore) Refresh(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	item, ok := ms.items[key]
	if !ok || item.token != token || now.After(item.expireTime) {
		return false, nil
	}
	item.expireTime = now.Add(ttl)
	return true, nil
}
