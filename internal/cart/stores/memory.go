package stores

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
)

const BackendMemory = "memory"

// Memory keeps serialized carts in process memory.
type Memory struct {
	mu      sync.RWMutex
	data    map[string][]byte
	metrics *metrics.CartMetrics
	logg    *logger.Logger
}

func NewMemory(m *metrics.CartMetrics, logg *logger.Logger) *Memory {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Memory{data: make(map[string][]byte), metrics: m, logg: logg}
}

func (m *Memory) Backend() string { return BackendMemory }

func (m *Memory) ForKey(key string) cart.Store {
	return &memoryStore{parent: m, key: key}
}

// PutRaw stores payload verbatim under key.
func (m *Memory) PutRaw(key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), payload...)
}

// Raw returns the payload stored under key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return append([]byte(nil), v...), ok
}

type memoryStore struct {
	parent *Memory
	key    string
}

func (s *memoryStore) Load(ctx context.Context) []cart.Item {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendMemory, "load", time.Since(start)) }()

	raw, ok := s.parent.Raw(s.key)
	if !ok {
		return []cart.Item{}
	}
	return decodeOrEmpty(ctx, s.parent.logg, s.parent.metrics, BackendMemory, s.key, raw)
}

func (s *memoryStore) Save(ctx context.Context, items []cart.Item) error {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendMemory, "save", time.Since(start)) }()

	payload, err := cart.EncodeItems(items)
	if err != nil {
		return err
	}
	s.parent.PutRaw(s.key, payload)
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	delete(s.parent.data, s.key)
	return nil
}
