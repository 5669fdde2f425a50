package navigation

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const entryNamespace = "navigation_entry"

// BunEntryRepository implements EntryRepository with optional read-through caching.
type BunEntryRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Entry]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunEntryRepository creates an entry repository without caching.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache creates an entry repository with caching services.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(entryNamespace)
	}
	return &BunEntryRepository{db: db, repo: base, cacheService: svc, cachePrefix: prefix}
}

func (r *BunEntryRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	record, err := r.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, entryNamespace, id.String())
	}
	return record, nil
}

func (r *BunEntryRepository) GetByPageKey(ctx context.Context, pageKey string) (*Entry, error) {
	record, err := r.repo.GetByIdentifier(ctx, pageKey)
	if err != nil {
		return nil, mapRepositoryError(err, entryNamespace, pageKey)
	}
	return record, nil
}

func (r *BunEntryRepository) List(ctx context.Context) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunEntryRepository) Update(ctx context.Context, entry *Entry) (*Entry, error) {
	record, err := r.repo.Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunEntryRepository) DeleteByPageKey(ctx context.Context, pageKey string) error {
	record, err := r.GetByPageKey(ctx, pageKey)
	if err != nil {
		return err
	}
	return r.repo.Delete(ctx, record)
}

func (r *BunEntryRepository) Count(ctx context.Context) (int, error) {
	_, total, err := r.repo.List(ctx, repository.SelectPaginate(1, 0))
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *BunEntryRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
