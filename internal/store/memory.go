package store

import (
	"context"
	"sync"
)

// MemoryBackend holds documents in process. LoadErr and SaveErr, when set,
// are returned (as storage failures) instead of touching the map.
type MemoryBackend struct {
	mu      sync.Mutex
	docs    map[Kind][]byte
	LoadErr error
	SaveErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: map[Kind][]byte{}}
}

func (m *MemoryBackend) Load(_ context.Context, kind Kind) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, fail("load", kind, m.LoadErr, "memory load")
	}
	doc, ok := m.docs[kind]
	if !ok {
		doc = DefaultDocument(kind)
		m.docs[kind] = doc
	}
	return append([]byte(nil), doc...), nil
}

func (m *MemoryBackend) Save(_ context.Context, kind Kind, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return fail("save", kind, m.SaveErr, "memory save")
	}
	m.docs[kind] = append([]byte(nil), doc...)
	return nil
}

// Put seeds a raw document.
func (m *MemoryBackend) Put(kind Kind, doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[kind] = append([]byte(nil), doc...)
}

func (m *MemoryBackend) Close() error { return nil }
