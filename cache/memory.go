package cache

import (
	"context"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/dgraph-io/ristretto/v2"
)

// Memory is an in-process response store backed by ristretto. The cost of
// an entry is the length of its body, so maxCost bounds memory in bytes.
type Memory struct {
	rc *ristretto.Cache[string, *composer.Response]
}

// NewMemory creates a Memory store holding roughly maxCost bytes of bodies.
func NewMemory(maxCost int64) (*Memory, error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, *composer.Response]{
		NumCounters: max(maxCost/64, 1000) * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Memory{rc: rc}, nil
}

// Get retrieves a copy of the response stored under key.
func (m *Memory) Get(_ context.Context, key string) (*composer.Response, bool, error) {
	v, ok := m.rc.Get(key)
	if !ok {
		return nil, false, nil
	}
	return composer.CloneResponse(v), true, nil
}

// Set stores a copy of resp under key with the given TTL.
func (m *Memory) Set(_ context.Context, key string, resp *composer.Response, ttl time.Duration) error {
	if resp == nil {
		return nil
	}
	m.rc.SetWithTTL(key, composer.CloneResponse(resp), int64(len(resp.Body))+1, ttl)
	m.rc.Wait()
	return nil
}

// Close stops ristretto's background goroutines.
func (m *Memory) Close() {
	m.rc.Close()
}
