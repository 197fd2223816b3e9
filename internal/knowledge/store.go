package knowledge

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/jlptquiz/internal/dataset"
)

// Store persists labels, one namespace per dataset kind. Writes are
// atomic per key and last-write-wins; they must be durable when the call
// returns.
type Store interface {
	// ReadLabels returns every label recorded for kind.
	ReadLabels(ctx context.Context, kind dataset.Kind) (Set, error)

	// SetLabel records one label. Setting None removes the key.
	SetLabel(ctx context.Context, kind dataset.Kind, key string, label Label) error

	// WriteLabels upserts every entry of labels. Entries set to None are
	// removed.
	WriteLabels(ctx context.Context, kind dataset.Kind, labels Set) error

	// ResetLabels removes every label recorded for kind.
	ResetLabels(ctx context.Context, kind dataset.Kind) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[dataset.Kind]Set
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[dataset.Kind]Set)}
}

func (m *MemoryStore) ReadLabels(_ context.Context, kind dataset.Kind) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(Set, len(m.sets[kind]))
	for k, v := range m.sets[kind] {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) SetLabel(_ context.Context, kind dataset.Kind, key string, label Label) error {
	if key == "" {
		return fmt.Errorf("empty item key")
	}
	if label != None && !label.Valid() {
		return fmt.Errorf("invalid label %v", label)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(kind, key, label)
	return nil
}

func (m *MemoryStore) WriteLabels(_ context.Context, kind dataset.Kind, labels Set) error {
	for key, l := range labels {
		if key == "" || (l != None && !l.Valid()) {
			return fmt.Errorf("invalid entry %q=%v", key, l)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, l := range labels {
		m.set(kind, key, l)
	}
	return nil
}

func (m *MemoryStore) ResetLabels(_ context.Context, kind dataset.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, kind)
	return nil
}

func (m *MemoryStore) set(kind dataset.Kind, key string, label Label) {
	if label == None {
		delete(m.sets[kind], key)
		return
	}
	s, ok := m.sets[kind]
	if !ok {
		s = make(Set)
		m.sets[kind] = s
	}
	s[key] = label
}
