package custompages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/memberweb/cms/internal/navigation"
)

const pageNamespace = "custom_page"

// BunPageStore implements PageRepository and SyncStore over bun. Sync plans
// run inside a single transaction so the page row and its navigation entry
// change together or not at all.
type BunPageStore struct {
	db           *bun.DB
	repo         repository.Repository[*CustomPage]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunPageStore creates a page store without caching.
func NewBunPageStore(db *bun.DB) *BunPageStore {
	return NewBunPageStoreWithCache(db, nil, nil)
}

// NewBunPageStoreWithCache creates a page store with read-through caching.
func NewBunPageStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPageStore {
	base := NewPageRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = pageNamespace + cache.KeySeparator
	}
	return &BunPageStore{db: db, repo: base, cacheService: svc, cachePrefix: prefix}
}

func (s *BunPageStore) GetByPageKey(ctx context.Context, pageKey string) (*CustomPage, error) {
	record, err := s.repo.GetByIdentifier(ctx, pageKey)
	if err != nil {
		return nil, mapStoreError(err, pageKey)
	}
	return record, nil
}

func (s *BunPageStore) List(ctx context.Context) ([]*CustomPage, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (s *BunPageStore) ListNavigable(ctx context.Context) ([]*CustomPage, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.is_active = ?", true).
				Where("?TableAlias.show_in_navigation = ?", true).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

// Apply implements SyncStore. The entry delete runs before the page delete
// so a navigation entry never outlives its page.
func (s *BunPageStore) Apply(ctx context.Context, plan *SyncPlan) error {
	if s.db == nil {
		return fmt.Errorf("custom page store: database not configured")
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if plan.DeleteEntryKey != "" {
			if _, err := tx.NewDelete().
				Model((*navigation.Entry)(nil)).
				Where("?TableAlias.page_key = ?", plan.DeleteEntryKey).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete navigation entry: %w", err)
			}
		}

		if plan.DeletePageKey != "" {
			res, err := tx.NewDelete().
				Model((*CustomPage)(nil)).
				Where("?TableAlias.page_key = ?", plan.DeletePageKey).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete custom page: %w", err)
			}
			if affected, err := res.RowsAffected(); err == nil && affected == 0 {
				return &NotFoundError{Resource: pageNamespace, Key: plan.DeletePageKey}
			}
		}

		if plan.Page != nil {
			if plan.PageIsNew {
				if _, err := tx.NewInsert().
					Model(plan.Page).
					Exec(ctx); err != nil {
					return fmt.Errorf("insert custom page: %w", err)
				}
			} else {
				if _, err := tx.NewUpdate().
					Model(plan.Page).
					WherePK().
					Exec(ctx); err != nil {
					return fmt.Errorf("update custom page: %w", err)
				}
			}
		}

		if plan.CreateEntry != nil {
			if _, err := tx.NewInsert().
				Model(plan.CreateEntry).
				Exec(ctx); err != nil {
				return fmt.Errorf("insert navigation entry: %w", err)
			}
		}
		if plan.UpdateEntry != nil {
			if _, err := tx.NewUpdate().
				Model(plan.UpdateEntry).
				WherePK().
				Exec(ctx); err != nil {
				return fmt.Errorf("update navigation entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.cacheService != nil && s.cachePrefix != "" {
		_ = s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
	}
	return nil
}

// InvalidateCache drops every cached custom page read.
func (s *BunPageStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func mapStoreError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: pageNamespace, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", pageNamespace, err)
}
