package custompages

import "context"

// PageRepository is the read surface over the custom page store. Writes go
// through SyncStore so that page and navigation mutations stay atomic.
type PageRepository interface {
	GetByPageKey(ctx context.Context, pageKey string) (*CustomPage, error)
	List(ctx context.Context) ([]*CustomPage, error)
	ListNavigable(ctx context.Context) ([]*CustomPage, error)
}

// SyncStore applies a SyncPlan as one unit of work. Either every write in
// the plan lands or none do; a page persisted without its navigation entry
// is a correctness bug, not an eventual-consistency state.
type SyncStore interface {
	Apply(ctx context.Context, plan *SyncPlan) error
}

// PageContentRemover removes content owned by a page when the page is
// deleted. Blocks, FAQ sections, and feature sections each provide one.
type PageContentRemover interface {
	RemoveForPage(ctx context.Context, pageKey string) error
}
