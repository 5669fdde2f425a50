package navigation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryEntryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Entry
	byKey map[string]uuid.UUID
}

// NewMemoryEntryRepository constructs an in-memory repository for navigation entries.
func NewMemoryEntryRepository() EntryRepository {
	return &memoryEntryRepository{
		byID:  make(map[uuid.UUID]*Entry),
		byKey: make(map[string]uuid.UUID),
	}
}

func (m *memoryEntryRepository) Create(_ context.Context, entry *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[entry.PageKey]; exists {
		return nil, ErrPageKeyExists
	}

	cloned := cloneEntry(entry)
	m.byID[cloned.ID] = cloned
	m.byKey[cloned.PageKey] = cloned.ID
	return cloneEntry(cloned), nil
}

func (m *memoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "navigation_entry", Key: id.String()}
	}
	return cloneEntry(record), nil
}

func (m *memoryEntryRepository) GetByPageKey(_ context.Context, pageKey string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[pageKey]
	if !ok {
		return nil, &NotFoundError{Resource: "navigation_entry", Key: pageKey}
	}
	return cloneEntry(m.byID[id]), nil
}

func (m *memoryEntryRepository) List(_ context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Entry, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneEntry(record))
	}
	return records, nil
}

func (m *memoryEntryRepository) Update(_ context.Context, entry *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[entry.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "navigation_entry", Key: entry.ID.String()}
	}

	oldKey := existing.PageKey
	cloned := cloneEntry(entry)
	m.byID[cloned.ID] = cloned

	if oldKey != "" && oldKey != cloned.PageKey {
		delete(m.byKey, oldKey)
	}
	m.byKey[cloned.PageKey] = cloned.ID

	return cloneEntry(cloned), nil
}

func (m *memoryEntryRepository) DeleteByPageKey(_ context.Context, pageKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byKey[pageKey]
	if !ok {
		return &NotFoundError{Resource: "navigation_entry", Key: pageKey}
	}
	delete(m.byID, id)
	delete(m.byKey, pageKey)
	return nil
}

func (m *memoryEntryRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

func cloneEntry(entry *Entry) *Entry {
	if entry == nil {
		return nil
	}
	cloned := *entry
	if entry.GuestSortOrder != nil {
		v := *entry.GuestSortOrder
		cloned.GuestSortOrder = &v
	}
	if entry.MemberSortOrder != nil {
		v := *entry.MemberSortOrder
		cloned.MemberSortOrder = &v
	}
	return &cloned
}
