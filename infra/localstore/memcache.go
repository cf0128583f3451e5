package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/CrestNiraj12/terminalwall/domain"
)

// DefaultMemcacheItemSize is memcached's stock item size limit.
const DefaultMemcacheItemSize = 1 << 20

// MemcacheStore keeps values in memcached with no expiry.
type MemcacheStore struct {
	client  *memcache.Client
	prefix  string
	maxItem int
}

// NewMemcacheStore creates a store against the given memcached servers.
func NewMemcacheStore(prefix string, maxItem int, servers ...string) *MemcacheStore {
	if maxItem <= 0 {
		maxItem = DefaultMemcacheItemSize
	}
	return &MemcacheStore{
		client:  memcache.New(servers...),
		prefix:  prefix,
		maxItem: maxItem,
	}
}

func (s *MemcacheStore) Get(_ context.Context, key string) (string, error) {
	item, err := s.client.Get(s.prefix + key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("memcache get %q: %w", key, err)
	}
	return string(item.Value), nil
}

func (s *MemcacheStore) Set(_ context.Context, key, value string) error {
	if len(value) > s.maxItem {
		return fmt.Errorf("setting %q (%d bytes, item limit %d): %w", key, len(value), s.maxItem, domain.ErrQuotaExceeded)
	}
	err := s.client.Set(&memcache.Item{
		Key:   s.prefix + key,
		Value: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("memcache set %q: %w", key, err)
	}
	return nil
}
