package custompages

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/pkg/interfaces"
)

// Service describes custom page management. Every write keeps the page row
// and its navigation entry reconciled through a single atomic sync plan.
type Service interface {
	List(ctx context.Context) ([]*CustomPage, error)
	Get(ctx context.Context, pageKey string) (*CustomPage, error)
	Create(ctx context.Context, input CreatePageInput) (*CustomPage, error)
	Update(ctx context.Context, input UpdatePageInput) (*CustomPage, error)
	Delete(ctx context.Context, pageKey string) error
	NavigationTree(ctx context.Context, viewer navigation.Viewer) ([]*TreeNode, error)
	InvalidateCache(ctx context.Context) error
}

// CreatePageInput captures the payload required to author a page.
type CreatePageInput struct {
	PageKey          string
	Title            string
	DisplayName      string
	Description      *string
	IsActive         bool
	ShowInNavigation bool
	NavigationType   string
	ParentPageKey    string
	SortOrder        int
	RequiredRoles    []string
	CreatedBy        uuid.UUID
}

// Validate applies field-level rules; cross-field checks live in the service.
func (in CreatePageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required.Error(ErrPageKeyRequired.Error())),
		validation.Field(&in.Title, validation.Required.Error(ErrTitleRequired.Error())),
		validation.Field(&in.DisplayName, validation.Required.Error(ErrDisplayNameRequired.Error())),
		validation.Field(&in.NavigationType, validation.Required,
			validation.In(NavigationTypeMain, NavigationTypeDropdownChild).Error(ErrNavigationTypeInvalid.Error())),
	)
}

// UpdatePageInput captures the mutable fields for a page. Nil pointers leave
// the stored value unchanged; the page key itself is immutable.
type UpdatePageInput struct {
	PageKey          string
	Title            *string
	DisplayName      *string
	Description      *string
	IsActive         *bool
	ShowInNavigation *bool
	NavigationType   *string
	ParentPageKey    *string
	SortOrder        *int
	RequiredRoles    []string
}

// ServiceOption configures custom page service behaviour.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger wires the module logger used for write-path reporting.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the ID generator for new pages and entries.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithKeyPolicy replaces the reserved key policy.
func WithKeyPolicy(policy KeyPolicy) ServiceOption {
	return func(s *service) {
		s.policy = policy
	}
}

// WithLegacyParents replaces the legacy dropdown header table.
func WithLegacyParents(parents map[string]LegacyParent) ServiceOption {
	return func(s *service) {
		if parents != nil {
			s.legacy = parents
		}
	}
}

// WithURLResolver wires the resolver used for tree node URLs.
func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithContentRemovers registers the stores cascaded on page deletion.
func WithContentRemovers(removers ...PageContentRemover) ServiceOption {
	return func(s *service) {
		s.removers = append(s.removers, removers...)
	}
}

type service struct {
	pages    PageRepository
	entries  navigation.EntryRepository
	store    SyncStore
	removers []PageContentRemover
	policy   KeyPolicy
	legacy   map[string]LegacyParent
	resolver URLResolver
	now      func() time.Time
	newID    func() uuid.UUID
	logger   interfaces.Logger
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService constructs a custom page service instance.
func NewService(pages PageRepository, entries navigation.EntryRepository, store SyncStore, opts ...ServiceOption) Service {
	s := &service{
		pages:    pages,
		entries:  entries,
		store:    store,
		policy:   DefaultKeyPolicy(),
		legacy:   DefaultLegacyParents(),
		resolver: PathResolver(""),
		now:      time.Now,
		newID:    uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored page for the admin surface.
func (s *service) List(ctx context.Context) ([]*CustomPage, error) {
	return s.pages.List(ctx)
}

// Get fetches one page by key.
func (s *service) Get(ctx context.Context, pageKey string) (*CustomPage, error) {
	key, err := NormalizePageKey(pageKey)
	if err != nil {
		return nil, err
	}
	return s.pages.GetByPageKey(ctx, key)
}

// Create authors a new page and, when it opts into the main navigation,
// registers its navigation entry in the same unit of work.
func (s *service) Create(ctx context.Context, input CreatePageInput) (*CustomPage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	key, err := NormalizePageKey(input.PageKey)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Validate(key); err != nil {
		return nil, err
	}
	if err := validateParentKey(input.NavigationType, input.ParentPageKey); err != nil {
		return nil, err
	}

	if _, err := s.pages.GetByPageKey(ctx, key); err == nil {
		return nil, ErrPageKeyExists
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	existing, err := s.lookupEntry(ctx, key)
	if err != nil {
		return nil, err
	}

	now := s.now()
	page := &CustomPage{
		ID:               s.newID(),
		PageKey:          key,
		Title:            input.Title,
		DisplayName:      input.DisplayName,
		Description:      input.Description,
		IsActive:         input.IsActive,
		ShowInNavigation: input.ShowInNavigation,
		NavigationType:   input.NavigationType,
		ParentPageKey:    input.ParentPageKey,
		SortOrder:        input.SortOrder,
		RequiredRoles:    navigation.EncodeRoles(input.RequiredRoles),
		CreatedBy:        input.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	plan, err := planSync(syncCreate, page, existing, now, s.newID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Apply(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.invalidateCaches(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("custompages.created",
		"page_key", page.PageKey, "linked", plan.CreateEntry != nil)
	return page, nil
}

// Update mutates an existing page and reconciles its navigation linkage.
func (s *service) Update(ctx context.Context, input UpdatePageInput) (*CustomPage, error) {
	key, err := NormalizePageKey(input.PageKey)
	if err != nil {
		return nil, err
	}

	page, err := s.pages.GetByPageKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		page.Title = *input.Title
	}
	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, ErrDisplayNameRequired
		}
		page.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		page.Description = input.Description
	}
	if input.IsActive != nil {
		page.IsActive = *input.IsActive
	}
	if input.ShowInNavigation != nil {
		page.ShowInNavigation = *input.ShowInNavigation
	}
	if input.NavigationType != nil {
		if *input.NavigationType != NavigationTypeMain && *input.NavigationType != NavigationTypeDropdownChild {
			return nil, ErrNavigationTypeInvalid
		}
		page.NavigationType = *input.NavigationType
	}
	if input.ParentPageKey != nil {
		page.ParentPageKey = *input.ParentPageKey
	}
	if input.SortOrder != nil {
		page.SortOrder = *input.SortOrder
	}
	if input.RequiredRoles != nil {
		page.RequiredRoles = navigation.EncodeRoles(input.RequiredRoles)
	}
	if err := validateParentKey(page.NavigationType, page.ParentPageKey); err != nil {
		return nil, err
	}

	existing, err := s.lookupEntry(ctx, key)
	if err != nil {
		return nil, err
	}

	page.UpdatedAt = s.now()
	plan, err := planSync(syncUpdate, page, existing, page.UpdatedAt, s.newID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Apply(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.invalidateCaches(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("custompages.updated", "page_key", page.PageKey)
	return page, nil
}

// Delete removes a page, its navigation entry, and its owned content. The
// entry is removed before the page so no orphan menu link survives.
func (s *service) Delete(ctx context.Context, pageKey string) error {
	key, err := NormalizePageKey(pageKey)
	if err != nil {
		return err
	}

	page, err := s.pages.GetByPageKey(ctx, key)
	if err != nil {
		return err
	}
	existing, err := s.lookupEntry(ctx, key)
	if err != nil {
		return err
	}

	plan, err := planSync(syncDelete, page, existing, s.now(), s.newID)
	if err != nil {
		return err
	}
	if err := s.store.Apply(ctx, plan); err != nil {
		return err
	}

	for _, remover := range s.removers {
		if err := remover.RemoveForPage(ctx, key); err != nil {
			s.logger.Error("custompages.cascade.failed", "page_key", key, "error", err)
			return err
		}
	}
	if err := s.invalidateCaches(ctx); err != nil {
		return err
	}

	s.logger.Info("custompages.deleted", "page_key", key, "was_linked", existing != nil)
	return nil
}

// NavigationTree builds the nested, viewer-filtered navigation tree.
func (s *service) NavigationTree(ctx context.Context, viewer navigation.Viewer) ([]*TreeNode, error) {
	pages, err := s.pages.ListNavigable(ctx)
	if err != nil {
		return nil, err
	}
	tree := BuildTree(pages, TreeOptions{
		LegacyParents: s.legacy,
		URLResolver:   s.resolver,
		Logger:        s.logger,
	})
	return FilterTree(tree, viewer), nil
}

// InvalidateCache clears cached page and navigation lookups when the backing
// stores are cache-backed.
func (s *service) InvalidateCache(ctx context.Context) error {
	return s.invalidateCaches(ctx)
}

func (s *service) invalidateCaches(ctx context.Context) error {
	if invalidator, ok := s.pages.(cacheInvalidator); ok {
		if err := invalidator.InvalidateCache(ctx); err != nil {
			return err
		}
	}
	if invalidator, ok := s.entries.(cacheInvalidator); ok {
		if err := invalidator.InvalidateCache(ctx); err != nil {
			return err
		}
	}
	return nil
}

// lookupEntry fetches the navigation entry registered at key, or nil when
// none exists.
func (s *service) lookupEntry(ctx context.Context, key string) (*navigation.Entry, error) {
	entry, err := s.entries.GetByPageKey(ctx, key)
	if err != nil {
		var notFound *navigation.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func validateParentKey(navigationType, parentPageKey string) error {
	switch navigationType {
	case NavigationTypeMain:
		if parentPageKey != "" {
			return ErrParentKeyOnMain
		}
	case NavigationTypeDropdownChild:
		if parentPageKey == "" {
			return ErrParentKeyRequired
		}
	}
	return nil
}
