package features

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/logging"
	"github.com/memberweb/cms/pkg/interfaces"
)

var (
	ErrPageKeyRequired = errors.New("features: page key is required")
	ErrTitleRequired   = errors.New("features: title is required")
)

// Service manages feature sections attached to custom pages.
type Service interface {
	Create(ctx context.Context, input CreateSectionInput) (*FeatureSection, error)
	Update(ctx context.Context, input UpdateSectionInput) (*FeatureSection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForPage(ctx context.Context, pageKey string) ([]*FeatureSection, error)
	RemoveForPage(ctx context.Context, pageKey string) error
}

// CreateSectionInput captures the payload for a new feature section.
type CreateSectionInput struct {
	PageKey   string
	Title     string
	Body      string
	Icon      string
	LinkURL   string
	SortOrder int
	IsActive  bool
}

func (in CreateSectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required.Error(ErrPageKeyRequired.Error())),
		validation.Field(&in.Title, validation.Required.Error(ErrTitleRequired.Error())),
	)
}

// UpdateSectionInput captures the mutable fields for a feature section.
type UpdateSectionInput struct {
	ID        uuid.UUID
	Title     *string
	Body      *string
	Icon      *string
	LinkURL   *string
	SortOrder *int
	IsActive  *bool
}

// ServiceOption configures feature service behaviour.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger wires the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the section ID generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

type service struct {
	repo   SectionRepository
	now    func() time.Time
	newID  func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs a feature service instance.
func NewService(repo SectionRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateSectionInput) (*FeatureSection, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	section := &FeatureSection{
		ID:        s.newID(),
		PageKey:   strings.ToLower(strings.TrimSpace(input.PageKey)),
		Title:     input.Title,
		Body:      input.Body,
		Icon:      input.Icon,
		LinkURL:   input.LinkURL,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, section)
}

func (s *service) Update(ctx context.Context, input UpdateSectionInput) (*FeatureSection, error) {
	section, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		section.Title = *input.Title
	}
	if input.Body != nil {
		section.Body = *input.Body
	}
	if input.Icon != nil {
		section.Icon = *input.Icon
	}
	if input.LinkURL != nil {
		section.LinkURL = *input.LinkURL
	}
	if input.SortOrder != nil {
		section.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	section.UpdatedAt = s.now()
	return s.repo.Update(ctx, section)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListForPage(ctx context.Context, pageKey string) ([]*FeatureSection, error) {
	records, err := s.repo.ListForPage(ctx, pageKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b *FeatureSection) int {
		return a.SortOrder - b.SortOrder
	})
	return records, nil
}

// RemoveForPage implements the page deletion cascade.
func (s *service) RemoveForPage(ctx context.Context, pageKey string) error {
	removed, err := s.repo.DeleteForPage(ctx, pageKey)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("features.cascade.removed", "page_key", pageKey, "count", removed)
	}
	return nil
}
