package sheets

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and local runs without Google
// credentials.
type MemoryStore struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{tabs: map[string][][]string{}}
}

// Seed replaces a tab's contents.
func (m *MemoryStore) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]string, len(rows))
	for i, r := range rows {
		copied[i] = append([]string(nil), r...)
	}
	m.tabs[sheet] = copied
}

func (m *MemoryStore) Rows(ctx context.Context, sheet string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tabs[sheet]
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *MemoryStore) Append(ctx context.Context, sheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabs[sheet] = append(m.tabs[sheet], append([]string(nil), row...))
	return nil
}
