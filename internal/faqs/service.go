package faqs

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
	ErrPageKeyRequired  = errors.New("faqs: page key is required")
	ErrTitleRequired    = errors.New("faqs: section title is required")
	ErrQuestionRequired = errors.New("faqs: question is required")
	ErrAnswerRequired   = errors.New("faqs: answer is required")
)

// Service manages FAQ sections attached to custom pages.
type Service interface {
	CreateSection(ctx context.Context, input CreateSectionInput) (*Section, error)
	UpdateSection(ctx context.Context, input UpdateSectionInput) (*Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, input AddItemInput) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListForPage(ctx context.Context, pageKey string) ([]*Section, error)
	RemoveForPage(ctx context.Context, pageKey string) error
}

// CreateSectionInput captures the payload for a new section.
type CreateSectionInput struct {
	PageKey   string
	Title     string
	SortOrder int
	IsActive  bool
}

func (in CreateSectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required.Error(ErrPageKeyRequired.Error())),
		validation.Field(&in.Title, validation.Required.Error(ErrTitleRequired.Error())),
	)
}

// UpdateSectionInput captures the mutable fields for a section.
type UpdateSectionInput struct {
	ID        uuid.UUID
	Title     *string
	SortOrder *int
	IsActive  *bool
}

// AddItemInput captures the payload for a new question/answer pair.
type AddItemInput struct {
	SectionID uuid.UUID
	Question  string
	Answer    string
	SortOrder int
}

func (in AddItemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Question, validation.Required.Error(ErrQuestionRequired.Error())),
		validation.Field(&in.Answer, validation.Required.Error(ErrAnswerRequired.Error())),
	)
}

// ServiceOption configures FAQ service behaviour.
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

// WithIDGenerator overrides the section and item ID generator.
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

// NewService constructs a FAQ service instance.
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

func (s *service) CreateSection(ctx context.Context, input CreateSectionInput) (*Section, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	section := &Section{
		ID:        s.newID(),
		PageKey:   strings.ToLower(strings.TrimSpace(input.PageKey)),
		Title:     input.Title,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.CreateSection(ctx, section)
}

func (s *service) UpdateSection(ctx context.Context, input UpdateSectionInput) (*Section, error) {
	section, err := s.repo.GetSection(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		section.Title = *input.Title
	}
	if input.SortOrder != nil {
		section.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	section.UpdatedAt = s.now()
	return s.repo.UpdateSection(ctx, section)
}

func (s *service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSection(ctx, id)
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	item := &Item{
		ID:        s.newID(),
		SectionID: input.SectionID,
		Question:  input.Question,
		Answer:    input.Answer,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.CreateItem(ctx, item)
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *service) ListForPage(ctx context.Context, pageKey string) ([]*Section, error) {
	sections, err := s.repo.ListForPage(ctx, pageKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(sections, func(a, b *Section) int {
		return a.SortOrder - b.SortOrder
	})
	for _, section := range sections {
		slices.SortStableFunc(section.Items, func(a, b *Item) int {
			return a.SortOrder - b.SortOrder
		})
	}
	return sections, nil
}

// RemoveForPage implements the page deletion cascade.
func (s *service) RemoveForPage(ctx context.Context, pageKey string) error {
	removed, err := s.repo.DeleteForPage(ctx, pageKey)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("faqs.cascade.removed", "page_key", pageKey, "sections", removed)
	}
	return nil
}
