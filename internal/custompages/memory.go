package custompages

import (
	"context"
	"sync"

	"github.com/memberweb/cms/internal/navigation"
)

// MemoryStore keeps custom pages in process memory and applies sync plans
// against an in-memory navigation repository. Entry writes run before page
// writes so a failed entry mutation leaves the page store untouched.
type MemoryStore struct {
	mu      sync.RWMutex
	byKey   map[string]*CustomPage
	entries navigation.EntryRepository
}

// NewMemoryStore builds an empty store linked to the given entry repository.
func NewMemoryStore(entries navigation.EntryRepository) *MemoryStore {
	return &MemoryStore{
		byKey:   make(map[string]*CustomPage),
		entries: entries,
	}
}

// GetByPageKey implements PageRepository.
func (s *MemoryStore) GetByPageKey(ctx context.Context, pageKey string) (*CustomPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.byKey[pageKey]
	if !ok {
		return nil, &NotFoundError{Resource: "custom_page", Key: pageKey}
	}
	return clonePage(page), nil
}

// List implements PageRepository.
func (s *MemoryStore) List(ctx context.Context) ([]*CustomPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]*CustomPage, 0, len(s.byKey))
	for _, page := range s.byKey {
		pages = append(pages, clonePage(page))
	}
	return pages, nil
}

// ListNavigable implements PageRepository.
func (s *MemoryStore) ListNavigable(ctx context.Context) ([]*CustomPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pages []*CustomPage
	for _, page := range s.byKey {
		if page.IsActive && page.ShowInNavigation {
			pages = append(pages, clonePage(page))
		}
	}
	return pages, nil
}

// Apply implements SyncStore.
func (s *MemoryStore) Apply(ctx context.Context, plan *SyncPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.PageIsNew {
		if _, exists := s.byKey[plan.Page.PageKey]; exists {
			return ErrPageKeyExists
		}
	}
	if plan.DeletePageKey != "" {
		if _, exists := s.byKey[plan.DeletePageKey]; !exists {
			return &NotFoundError{Resource: "custom_page", Key: plan.DeletePageKey}
		}
	}

	if plan.DeleteEntryKey != "" {
		if err := s.entries.DeleteByPageKey(ctx, plan.DeleteEntryKey); err != nil {
			return err
		}
	}
	if plan.CreateEntry != nil {
		if _, err := s.entries.Create(ctx, plan.CreateEntry); err != nil {
			return err
		}
	}
	if plan.UpdateEntry != nil {
		if _, err := s.entries.Update(ctx, plan.UpdateEntry); err != nil {
			return err
		}
	}

	if plan.DeletePageKey != "" {
		delete(s.byKey, plan.DeletePageKey)
	}
	if plan.Page != nil {
		s.byKey[plan.Page.PageKey] = clonePage(plan.Page)
	}
	return nil
}

func clonePage(page *CustomPage) *CustomPage {
	clone := *page
	if page.Description != nil {
		desc := *page.Description
		clone.Description = &desc
	}
	return &clone
}
