package blocks

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
	ErrPageKeyRequired = errors.New("blocks: page key is required")
	ErrSlotRequired    = errors.New("blocks: slot is required")
	ErrContentRequired = errors.New("blocks: content is required")
)

// Service manages the markdown blocks attached to custom pages.
type Service interface {
	Create(ctx context.Context, input CreateBlockInput) (*ContentBlock, error)
	Update(ctx context.Context, input UpdateBlockInput) (*ContentBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForPage(ctx context.Context, pageKey string) ([]*ContentBlock, error)
	RenderForPage(ctx context.Context, pageKey string) ([]*RenderedBlock, error)
	RemoveForPage(ctx context.Context, pageKey string) error
}

// CreateBlockInput captures the payload for a new block.
type CreateBlockInput struct {
	PageKey   string
	Slot      string
	Title     string
	Content   string
	SortOrder int
	IsActive  bool
}

func (in CreateBlockInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required.Error(ErrPageKeyRequired.Error())),
		validation.Field(&in.Slot, validation.Required.Error(ErrSlotRequired.Error())),
		validation.Field(&in.Content, validation.Required.Error(ErrContentRequired.Error())),
	)
}

// UpdateBlockInput captures the mutable fields for a block.
type UpdateBlockInput struct {
	ID        uuid.UUID
	Slot      *string
	Title     *string
	Content   *string
	SortOrder *int
	IsActive  *bool
}

// ServiceOption configures block service behaviour.
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

// WithIDGenerator overrides the block ID generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(renderer Renderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

type service struct {
	repo     BlockRepository
	renderer Renderer
	now      func() time.Time
	newID    func() uuid.UUID
	logger   interfaces.Logger
}

// NewService constructs a block service instance.
func NewService(repo BlockRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		renderer: NewGoldmarkRenderer(),
		now:      time.Now,
		newID:    uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateBlockInput) (*ContentBlock, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	block := &ContentBlock{
		ID:        s.newID(),
		PageKey:   strings.ToLower(strings.TrimSpace(input.PageKey)),
		Slot:      input.Slot,
		Title:     input.Title,
		Content:   input.Content,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, block)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("blocks.created", "page_key", created.PageKey, "slot", created.Slot)
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateBlockInput) (*ContentBlock, error) {
	block, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Slot != nil {
		if *input.Slot == "" {
			return nil, ErrSlotRequired
		}
		block.Slot = *input.Slot
	}
	if input.Title != nil {
		block.Title = *input.Title
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, ErrContentRequired
		}
		block.Content = *input.Content
	}
	if input.SortOrder != nil {
		block.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		block.IsActive = *input.IsActive
	}

	block.UpdatedAt = s.now()
	return s.repo.Update(ctx, block)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListForPage(ctx context.Context, pageKey string) ([]*ContentBlock, error) {
	records, err := s.repo.ListForPage(ctx, pageKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b *ContentBlock) int {
		return a.SortOrder - b.SortOrder
	})
	return records, nil
}

// RenderForPage returns the page's active blocks with their markdown
// rendered to HTML, ordered by sort order.
func (s *service) RenderForPage(ctx context.Context, pageKey string) ([]*RenderedBlock, error) {
	records, err := s.ListForPage(ctx, pageKey)
	if err != nil {
		return nil, err
	}

	rendered := make([]*RenderedBlock, 0, len(records))
	for _, block := range records {
		if !block.IsActive {
			continue
		}
		html, err := s.renderer.Render([]byte(block.Content))
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, &RenderedBlock{ContentBlock: block, HTML: string(html)})
	}
	return rendered, nil
}

// RemoveForPage implements the page deletion cascade.
func (s *service) RemoveForPage(ctx context.Context, pageKey string) error {
	removed, err := s.repo.DeleteForPage(ctx, pageKey)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("blocks.cascade.removed", "page_key", pageKey, "count", removed)
	}
	return nil
}
