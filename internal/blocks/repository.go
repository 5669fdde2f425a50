package blocks

import (
	"context"
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BlockRepository exposes persistence operations for content blocks.
type BlockRepository interface {
	Create(ctx context.Context, block *ContentBlock) (*ContentBlock, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ContentBlock, error)
	ListForPage(ctx context.Context, pageKey string) ([]*ContentBlock, error)
	Update(ctx context.Context, block *ContentBlock) (*ContentBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForPage(ctx context.Context, pageKey string) (int, error)
}

// NotFoundError is returned when a block cannot be located.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content block %s not found", e.ID)
}

// NewBlockRecordRepository creates a go-repository-bun repository for block records.
func NewBlockRecordRepository(db *bun.DB) repository.Repository[*ContentBlock] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentBlock]{
		NewRecord: func() *ContentBlock { return &ContentBlock{} },
		GetID: func(b *ContentBlock) uuid.UUID {
			return b.ID
		},
		SetID: func(b *ContentBlock, id uuid.UUID) {
			b.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(b *ContentBlock) string {
			return b.ID.String()
		},
	})
}

// BunBlockRepository implements BlockRepository over bun.
type BunBlockRepository struct {
	db   *bun.DB
	repo repository.Repository[*ContentBlock]
}

// NewBunBlockRepository creates a block repository.
func NewBunBlockRepository(db *bun.DB) *BunBlockRepository {
	return &BunBlockRepository{db: db, repo: NewBlockRecordRepository(db)}
}

func (r *BunBlockRepository) Create(ctx context.Context, block *ContentBlock) (*ContentBlock, error) {
	return r.repo.Create(ctx, block)
}

func (r *BunBlockRepository) GetByID(ctx context.Context, id uuid.UUID) (*ContentBlock, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("content block repository error: %w", err)
	}
	return record, nil
}

func (r *BunBlockRepository) ListForPage(ctx context.Context, pageKey string) ([]*ContentBlock, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.page_key = ?", pageKey).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunBlockRepository) Update(ctx context.Context, block *ContentBlock) (*ContentBlock, error) {
	return r.repo.Update(ctx, block)
}

func (r *BunBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return r.repo.Delete(ctx, record)
}

func (r *BunBlockRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	res, err := r.db.NewDelete().
		Model((*ContentBlock)(nil)).
		Where("?TableAlias.page_key = ?", pageKey).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete page blocks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}

// MemoryBlockRepository keeps blocks in process memory.
type MemoryBlockRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*ContentBlock
}

// NewMemoryBlockRepository creates an empty in-memory repository.
func NewMemoryBlockRepository() *MemoryBlockRepository {
	return &MemoryBlockRepository{byID: make(map[uuid.UUID]*ContentBlock)}
}

func (r *MemoryBlockRepository) Create(ctx context.Context, block *ContentBlock) (*ContentBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *block
	r.byID[block.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryBlockRepository) GetByID(ctx context.Context, id uuid.UUID) (*ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	block, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	clone := *block
	return &clone, nil
}

func (r *MemoryBlockRepository) ListForPage(ctx context.Context, pageKey string) ([]*ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*ContentBlock
	for _, block := range r.byID {
		if block.PageKey == pageKey {
			clone := *block
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *MemoryBlockRepository) Update(ctx context.Context, block *ContentBlock) (*ContentBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[block.ID]; !ok {
		return nil, &NotFoundError{ID: block.ID}
	}
	clone := *block
	r.byID[block.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryBlockRepository) DeleteForPage(ctx context.Context, pageKey string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, block := range r.byID {
		if block.PageKey == pageKey {
			delete(r.byID, id)
			removed++
		}
	}
	return removed, nil
}
