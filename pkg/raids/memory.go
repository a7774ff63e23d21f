package raids

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStorage implements an in-memory raid log. Contents are lost on
// restart; intended for development and demos.
type MemoryStorage struct {
	raids map[string]*Raid
	mu    sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory raid log.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		raids: make(map[string]*Raid),
	}
}

// Save stores a raid in memory.
func (m *MemoryStorage) Save(raid *Raid) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if raid.ID == "" {
		return fmt.Errorf("raid ID cannot be empty")
	}

	m.raids[raid.ID] = raid
	return nil
}

// List returns all raids, newest first.
func (m *MemoryStorage) List() ([]*Raid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raids := make([]*Raid, 0, len(m.raids))
	for _, raid := range m.raids {
		raids = append(raids, raid)
	}

	sort.Slice(raids, func(i, j int) bool {
		return raids[i].Date.After(raids[j].Date)
	})

	return raids, nil
}

// Delete removes a raid from memory.
func (m *MemoryStorage) Delete(raidID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.raids[raidID]; !exists {
		return ErrRaidNotFound
	}

	delete(m.raids, raidID)
	return nil
}

// Close is a no-op for memory storage.
func (m *MemoryStorage) Close() error {
	return nil
}
