package storage

import (
	"context"

	"argentvault/internal/cache"
)

// CachedStore is a read-through, write-through cache in front of a Store.
// Misses are not cached so a key written by another process shows up once
// its cached copy expires.
type CachedStore struct {
	next  Store
	cache cache.Cache[[]byte]
}

func NewCachedStore(next Store, c cache.Cache[[]byte]) *CachedStore {
	return &CachedStore{next: next, cache: c}
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return append([]byte(nil), v...), true, nil
	}
	v, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Set(key, append([]byte(nil), v...))
	return v, true, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.Set(key, append([]byte(nil), value...))
	return nil
}

// Close closes the wrapped store when it holds resources.
func (s *CachedStore) Close() error {
	if c, ok := s.next.(Closer); ok {
		return c.Close()
	}
	return nil
}
