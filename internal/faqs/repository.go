package faqs

import (
	"context"
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SectionRepository exposes persistence operations for FAQ sections and
// their items.
type SectionRepository interface {
	CreateSection(ctx context.Context, section *Section) (*Section, error)
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	ListForPage(ctx context.Context, pageKey string) ([]*Section, error)
	UpdateSection(ctx context.Context, section *Section) (*Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
	CreateItem(ctx context.Context, item *Item) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteForPage(ctx context.Context, pageKey string) (int, error)
}

// NotFoundError is returned when a section or item cannot be located.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewSectionRecordRepository creates a go-repository-bun repository for Section records.
func NewSectionRecordRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord: func() *Section { return &Section{} },
		GetID: func(s *Section) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Section, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *Section) string {
			return s.ID.String()
		},
	})
}

// BunSectionRepository implements SectionRepository over bun. Page-level
// deletes remove items and sections in one transaction.
type BunSectionRepository struct {
	db   *bun.DB
	repo repository.Repository[*Section]
}

// NewBunSectionRepository creates a section repository.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return &BunSectionRepository{db: db, repo: NewSectionRecordRepository(db)}
}

func (r *BunSectionRepository) CreateSection(ctx context.Context, section *Section) (*Section, error) {
	return r.repo.Create(ctx, section)
}

func (r *BunSectionRepository) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	section := new(Section)
	err := r.db.NewSelect().
		Model(section).
		Relation("Items").
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Resource: "faq_section", ID: id}
		}
		return nil, fmt.Errorf("faq section repository error: %w", err)
	}
	return section, nil
}

func (r *BunSectionRepository) ListForPage(ctx context.Context, pageKey string) ([]*Section, error) {
	var sections []*Section
	err := r.db.NewSelect().
		Model(&sections).
		Relation("Items").
		Where("?TableAlias.page_key = ?", pageKey).
		OrderExpr("?TableAlias.sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faq sections: %w", err)
	}
	return sections, nil
}

func (r *BunSectionRepository) UpdateSection(ctx context.Context, section *Section) (*Section, error) {
	return r.repo.Update(ctx, section)
}

func (r *BunSectionRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Item)(nil)).
			Where("?TableAlias.section_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete faq items: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete faq section: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{Resource: "faq_section", ID: id}
		}
		return nil
	})
}

func (r *BunSectionRepository) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert faq item: %w", err)
	}
	return item, nil
}

func (r *BunSectionRepository) UpdateItem(ctx context.Context, item *Item) (*Item, error) {
	if _, err := r.db.NewUpdate().Model(item).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("update faq item: %w", err)
	}
	return item, nil
}

func (r *BunSectionRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Item)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete faq item: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Resource: "faq_item", ID: id}
	}
	return nil
}

func (r *BunSectionRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	removed := 0
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var ids []uuid.UUID
		if err := tx.NewSelect().
			Model((*Section)(nil)).
			Column("id").
			Where("?TableAlias.page_key = ?", pageKey).
			Scan(ctx, &ids); err != nil {
			return fmt.Errorf("list faq section ids: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if _, err := tx.NewDelete().
			Model((*Item)(nil)).
			Where("?TableAlias.section_id IN (?)", bun.In(ids)).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete faq items: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("?TableAlias.page_key = ?", pageKey).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete faq sections: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			removed = int(affected)
		}
		return nil
	})
	return removed, err
}

// MemorySectionRepository keeps sections and items in process memory.
type MemorySectionRepository struct {
	mu       sync.RWMutex
	sections map[uuid.UUID]*Section
	items    map[uuid.UUID]*Item
}

// NewMemorySectionRepository creates an empty in-memory repository.
func NewMemorySectionRepository() *MemorySectionRepository {
	return &MemorySectionRepository{
		sections: make(map[uuid.UUID]*Section),
		items:    make(map[uuid.UUID]*Item),
	}
}

func (r *MemorySectionRepository) CreateSection(ctx context.Context, section *Section) (*Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneSection(section)
	r.sections[section.ID] = clone
	return cloneSection(clone), nil
}

func (r *MemorySectionRepository) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	section, ok := r.sections[id]
	if !ok {
		return nil, &NotFoundError{Resource: "faq_section", ID: id}
	}
	out := cloneSection(section)
	out.Items = r.itemsForSection(id)
	return out, nil
}

func (r *MemorySectionRepository) ListForPage(ctx context.Context, pageKey string) ([]*Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Section
	for _, section := range r.sections {
		if section.PageKey != pageKey {
			continue
		}
		clone := cloneSection(section)
		clone.Items = r.itemsForSection(section.ID)
		out = append(out, clone)
	}
	return out, nil
}

func (r *MemorySectionRepository) UpdateSection(ctx context.Context, section *Section) (*Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sections[section.ID]; !ok {
		return nil, &NotFoundError{Resource: "faq_section", ID: section.ID}
	}
	r.sections[section.ID] = cloneSection(section)
	return cloneSection(section), nil
}

func (r *MemorySectionRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sections[id]; !ok {
		return &NotFoundError{Resource: "faq_section", ID: id}
	}
	delete(r.sections, id)
	for itemID, item := range r.items {
		if item.SectionID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *MemorySectionRepository) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sections[item.SectionID]; !ok {
		return nil, &NotFoundError{Resource: "faq_section", ID: item.SectionID}
	}
	clone := *item
	r.items[item.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemorySectionRepository) UpdateItem(ctx context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "faq_item", ID: item.ID}
	}
	clone := *item
	r.items[item.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemorySectionRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return &NotFoundError{Resource: "faq_item", ID: id}
	}
	delete(r.items, id)
	return nil
}

func (r *MemorySectionRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, section := range r.sections {
		if section.PageKey != pageKey {
			continue
		}
		delete(r.sections, id)
		removed++
		for itemID, item := range r.items {
			if item.SectionID == id {
				delete(r.items, itemID)
			}
		}
	}
	return removed, nil
}

func (r *MemorySectionRepository) itemsForSection(sectionID uuid.UUID) []*Item {
	var out []*Item
	for _, item := range r.items {
		if item.SectionID == sectionID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out
}

func cloneSection(section *Section) *Section {
	clone := *section
	clone.Items = nil
	return &clone
}
