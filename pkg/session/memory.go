package session

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

// MemoryDenylist keeps revocations in process memory. Revocations are lost
// on restart, so it suits single-instance deployments and tests.
type MemoryDenylist struct {
	cache *bigcache.BigCache
	now   func() time.Time
}

// NewMemoryDenylist evicts entries after lifeWindow, which should be at
// least the token TTL.
func NewMemoryDenylist(lifeWindow time.Duration) (*MemoryDenylist, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("init denylist cache: %w", err)
	}
	return &MemoryDenylist{cache: cache, now: time.Now}, nil
}

func (m *MemoryDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(until.Unix()))
	return m.cache.Set(tokenID, buf[:])
}

func (m *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	buf, err := m.cache.Get(tokenID)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(buf) != 8 {
		return true, nil
	}
	until := time.Unix(int64(binary.BigEndian.Uint64(buf)), 0)
	return m.now().Before(until), nil
}

func (m *MemoryDenylist) Close() error {
	return m.cache.Close()
}
