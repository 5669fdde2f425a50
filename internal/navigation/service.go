package navigation

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/pkg/interfaces"
)

var (
	ErrPageKeyRequired     = errors.New("navigation: page key is required")
	ErrPageKeyInvalid      = errors.New("navigation: page key must contain only letters, numbers, hyphen, or underscore")
	ErrPageKeyExists       = errors.New("navigation: page key already exists")
	ErrPageKeyProtected    = errors.New("navigation: page key is reserved for a system entry")
	ErrEntryNotFound       = errors.New("navigation: entry not found")
	ErrDisplayNameRequired = errors.New("navigation: display name is required")
	ErrItemTypeInvalid     = errors.New("navigation: item type is invalid")
	ErrRolesRequired       = errors.New("navigation: role-specific entries require at least one role")
)

// Service describes navigation entry management.
//
// Creation and updates cover static and role-specific entries; entries of
// type "custom" are owned by the custom page synchronizer and system entries
// are seeded once at boot. Writes against the protected system keys succeed
// but have their invariant fields silently re-forced; DESIGN.md records the
// policy choice.
type Service interface {
	List(ctx context.Context) ([]*Entry, error)
	VisibleEntries(ctx context.Context, viewer Viewer) ([]*Entry, error)
	Get(ctx context.Context, pageKey string) (*Entry, error)
	Create(ctx context.Context, input CreateEntryInput) (*Entry, error)
	Update(ctx context.Context, input UpdateEntryInput) (*Entry, error)
	EnsureSeed(ctx context.Context, seeds []SeedEntry) (int, error)
	InvalidateCache(ctx context.Context) error
}

// CreateEntryInput captures the payload required to register a navigation entry.
type CreateEntryInput struct {
	PageKey            string
	DisplayName        string
	ItemType           string
	SortOrder          int
	GuestSortOrder     *int
	MemberSortOrder    *int
	IsVisibleToGuests  bool
	IsVisibleToMembers bool
	IsActive           bool
	RequiredRoles      []string
}

// Validate applies field-level rules; cross-field checks live in the service.
func (in CreateEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required.Error(ErrPageKeyRequired.Error()), validation.By(validatePageKeyCharset)),
		validation.Field(&in.DisplayName, validation.Required.Error(ErrDisplayNameRequired.Error())),
		validation.Field(&in.ItemType, validation.Required, validation.In(EntryTypeStatic, EntryTypeRoleSpecific).Error(ErrItemTypeInvalid.Error())),
	)
}

// UpdateEntryInput captures the mutable fields for an entry. Nil pointers
// leave the stored value unchanged.
type UpdateEntryInput struct {
	PageKey            string
	DisplayName        *string
	SortOrder          *int
	GuestSortOrder     *int
	MemberSortOrder    *int
	IsVisibleToGuests  *bool
	IsVisibleToMembers *bool
	IsActive           *bool
	IsSystemItem       *bool
	RequiredRoles      []string
}

// SeedEntry declares one system/static entry created by the idempotent boot
// seed.
type SeedEntry struct {
	PageKey            string
	DisplayName        string
	ItemType           string
	SortOrder          int
	GuestSortOrder     *int
	MemberSortOrder    *int
	IsVisibleToGuests  bool
	IsVisibleToMembers bool
	IsSystemItem       bool
	RequiredRoles      []string
}

// IDDeriver produces stable identities for seeded entries so repeated boots
// converge on the same rows.
type IDDeriver func(pageKey string) uuid.UUID

// ServiceOption configures navigation service behaviour.
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

// WithIDGenerator overrides the ID generator used for admin-created entries.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithSeedIDDeriver overrides how seeded system/static entry IDs are derived.
func WithSeedIDDeriver(deriver IDDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.seedID = deriver
		}
	}
}

type service struct {
	entries EntryRepository
	now     func() time.Time
	newID   func() uuid.UUID
	seedID  IDDeriver
	logger  interfaces.Logger
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService constructs a navigation service instance.
func NewService(entryRepo EntryRepository, opts ...ServiceOption) Service {
	s := &service{
		entries: entryRepo,
		now:     time.Now,
		newID:   uuid.New,
		seedID:  func(string) uuid.UUID { return uuid.New() },
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored entry, unfiltered, for the admin surface.
func (s *service) List(ctx context.Context) ([]*Entry, error) {
	return s.entries.List(ctx)
}

// VisibleEntries resolves the viewer-facing navigation list, sorted by
// effective order.
func (s *service) VisibleEntries(ctx context.Context, viewer Viewer) ([]*Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleEntries(entries, viewer), nil
}

// Get fetches one entry by page key. A missing home entry resolves to a
// synthetic default so navigation rendering never loses its anchor.
func (s *service) Get(ctx context.Context, pageKey string) (*Entry, error) {
	key := normalizePageKey(pageKey)
	if key == "" {
		return nil, ErrPageKeyRequired
	}

	entry, err := s.entries.GetByPageKey(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			if key == PageKeyHome {
				return s.defaultHomeEntry(), nil
			}
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Create registers a static or role-specific entry. System keys are rejected
// outright; custom entries are owned by the page synchronizer and cannot be
// created here.
func (s *service) Create(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	input.PageKey = normalizePageKey(input.PageKey)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if isProtectedKey(input.PageKey) {
		return nil, ErrPageKeyProtected
	}
	roles := EncodeRoles(input.RequiredRoles)
	if input.ItemType == EntryTypeRoleSpecific && roles == "" {
		return nil, ErrRolesRequired
	}

	if _, err := s.entries.GetByPageKey(ctx, input.PageKey); err == nil {
		return nil, ErrPageKeyExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	entry := &Entry{
		ID:                 s.newID(),
		PageKey:            input.PageKey,
		DisplayName:        input.DisplayName,
		ItemType:           input.ItemType,
		SortOrder:          input.SortOrder,
		GuestSortOrder:     input.GuestSortOrder,
		MemberSortOrder:    input.MemberSortOrder,
		IsVisibleToGuests:  input.IsVisibleToGuests,
		IsVisibleToMembers: input.IsVisibleToMembers,
		IsActive:           input.IsActive,
		RequiredRoles:      roles,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("navigation.entry.created", "page_key", created.PageKey, "item_type", created.ItemType)
	return created, nil
}

// Update mutates an existing entry. Invariant fields on the protected system
// keys are silently re-forced rather than rejected; the write still succeeds.
func (s *service) Update(ctx context.Context, input UpdateEntryInput) (*Entry, error) {
	key := normalizePageKey(input.PageKey)
	if key == "" {
		return nil, ErrPageKeyRequired
	}

	entry, err := s.entries.GetByPageKey(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, ErrDisplayNameRequired
		}
		entry.DisplayName = *input.DisplayName
	}
	if input.SortOrder != nil {
		entry.SortOrder = *input.SortOrder
	}
	if input.GuestSortOrder != nil {
		entry.GuestSortOrder = input.GuestSortOrder
	}
	if input.MemberSortOrder != nil {
		entry.MemberSortOrder = input.MemberSortOrder
	}
	if input.IsVisibleToGuests != nil {
		entry.IsVisibleToGuests = *input.IsVisibleToGuests
	}
	if input.IsVisibleToMembers != nil {
		entry.IsVisibleToMembers = *input.IsVisibleToMembers
	}
	if input.IsActive != nil {
		entry.IsActive = *input.IsActive
	}
	if input.IsSystemItem != nil {
		entry.IsSystemItem = *input.IsSystemItem
	}
	if input.RequiredRoles != nil {
		entry.RequiredRoles = EncodeRoles(input.RequiredRoles)
	}

	forceSystemInvariants(entry)

	if entry.ItemType == EntryTypeRoleSpecific && entry.RequiredRoles == "" {
		return nil, ErrRolesRequired
	}

	entry.UpdatedAt = s.now()
	updated, err := s.entries.Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("navigation.entry.updated", "page_key", updated.PageKey)
	return updated, nil
}

// EnsureSeed creates the provided entries when the store is empty. It is safe
// to run on every boot: a non-empty store turns the call into a no-op, and
// derived IDs keep repeated first boots convergent.
func (s *service) EnsureSeed(ctx context.Context, seeds []SeedEntry) (int, error) {
	count, err := s.entries.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := s.now()
	created := 0
	for _, seed := range seeds {
		key := normalizePageKey(seed.PageKey)
		if key == "" {
			return created, ErrPageKeyRequired
		}
		entry := &Entry{
			ID:                 s.seedID(key),
			PageKey:            key,
			DisplayName:        seed.DisplayName,
			ItemType:           seed.ItemType,
			SortOrder:          seed.SortOrder,
			GuestSortOrder:     seed.GuestSortOrder,
			MemberSortOrder:    seed.MemberSortOrder,
			IsVisibleToGuests:  seed.IsVisibleToGuests,
			IsVisibleToMembers: seed.IsVisibleToMembers,
			IsActive:           true,
			IsSystemItem:       seed.IsSystemItem,
			RequiredRoles:      EncodeRoles(seed.RequiredRoles),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		forceSystemInvariants(entry)
		if _, err := s.entries.Create(ctx, entry); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		if err := s.InvalidateCache(ctx); err != nil {
			return created, err
		}
		s.logger.Info("navigation.seeded", "entries", created)
	}
	return created, nil
}

// InvalidateCache clears cached navigation lookups when the repository is
// cache-backed.
func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.entries.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

// forceSystemInvariants re-asserts the protected fields on system entries.
// The home entry anchors every navigation view and can never be hidden;
// admin and logout must stay flagged and active but keep caller-controlled
// visibility.
func forceSystemInvariants(entry *Entry) {
	switch entry.PageKey {
	case PageKeyHome:
		entry.ItemType = EntryTypeSystem
		entry.IsSystemItem = true
		entry.IsActive = true
		entry.IsVisibleToGuests = true
		entry.IsVisibleToMembers = true
		entry.RequiredRoles = ""
	case PageKeyAdmin, PageKeyLogout:
		entry.ItemType = EntryTypeSystem
		entry.IsSystemItem = true
		entry.IsActive = true
	}
}

func (s *service) defaultHomeEntry() *Entry {
	now := s.now()
	entry := &Entry{
		ID:                 s.seedID(PageKeyHome),
		PageKey:            PageKeyHome,
		DisplayName:        "Home",
		ItemType:           EntryTypeSystem,
		SortOrder:          1,
		IsVisibleToGuests:  true,
		IsVisibleToMembers: true,
		IsActive:           true,
		IsSystemItem:       true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return entry
}

func normalizePageKey(pageKey string) string {
	return strings.ToLower(strings.TrimSpace(pageKey))
}

func isProtectedKey(pageKey string) bool {
	switch pageKey {
	case PageKeyHome, PageKeyAdmin, PageKeyLogout:
		return true
	}
	return false
}

func validatePageKeyCharset(value any) error {
	key, _ := value.(string)
	if key == "" {
		return nil
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return ErrPageKeyInvalid
		}
	}
	return nil
}
