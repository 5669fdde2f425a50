package features

import (
	"context"
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SectionRepository exposes persistence operations for feature sections.
type SectionRepository interface {
	Create(ctx context.Context, section *FeatureSection) (*FeatureSection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FeatureSection, error)
	ListForPage(ctx context.Context, pageKey string) ([]*FeatureSection, error)
	Update(ctx context.Context, section *FeatureSection) (*FeatureSection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForPage(ctx context.Context, pageKey string) (int, error)
}

// NotFoundError is returned when a feature section cannot be located.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature section %s not found", e.ID)
}

// NewSectionRecordRepository creates a go-repository-bun repository for FeatureSection records.
func NewSectionRecordRepository(db *bun.DB) repository.Repository[*FeatureSection] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*FeatureSection]{
		NewRecord: func() *FeatureSection { return &FeatureSection{} },
		GetID: func(s *FeatureSection) uuid.UUID {
			return s.ID
		},
		SetID: func(s *FeatureSection, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *FeatureSection) string {
			return s.ID.String()
		},
	})
}

// BunSectionRepository implements SectionRepository over bun.
type BunSectionRepository struct {
	db   *bun.DB
	repo repository.Repository[*FeatureSection]
}

// NewBunSectionRepository creates a feature section repository.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return &BunSectionRepository{db: db, repo: NewSectionRecordRepository(db)}
}

func (r *BunSectionRepository) Create(ctx context.Context, section *FeatureSection) (*FeatureSection, error) {
	return r.repo.Create(ctx, section)
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*FeatureSection, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("feature section repository error: %w", err)
	}
	return record, nil
}

func (r *BunSectionRepository) ListForPage(ctx context.Context, pageKey string) ([]*FeatureSection, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.page_key = ?", pageKey).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunSectionRepository) Update(ctx context.Context, section *FeatureSection) (*FeatureSection, error) {
	return r.repo.Update(ctx, section)
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return r.repo.Delete(ctx, record)
}

func (r *BunSectionRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	res, err := r.db.NewDelete().
		Model((*FeatureSection)(nil)).
		Where("?TableAlias.page_key = ?", pageKey).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete page feature sections: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}

// MemorySectionRepository keeps feature sections in process memory.
type MemorySectionRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*FeatureSection
}

// NewMemorySectionRepository creates an empty in-memory repository.
func NewMemorySectionRepository() *MemorySectionRepository {
	return &MemorySectionRepository{byID: make(map[uuid.UUID]*FeatureSection)}
}

func (r *MemorySectionRepository) Create(ctx context.Context, section *FeatureSection) (*FeatureSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *section
	r.byID[section.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemorySectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*FeatureSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	section, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	clone := *section
	return &clone, nil
}

func (r *MemorySectionRepository) ListForPage(ctx context.Context, pageKey string) ([]*FeatureSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*FeatureSection
	for _, section := range r.byID {
		if section.PageKey == pageKey {
			clone := *section
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *MemorySectionRepository) Update(ctx context.Context, section *FeatureSection) (*FeatureSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[section.ID]; !ok {
		return nil, &NotFoundError{ID: section.ID}
	}
	clone := *section
	r.byID[section.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemorySectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemorySectionRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, section := range r.byID {
		if section.PageKey == pageKey {
			delete(r.byID, id)
			removed++
		}
	}
	return removed, nil
}
