package navigation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EntryRepository exposes persistence operations for navigation entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetByPageKey(ctx context.Context, pageKey string) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	DeleteByPageKey(ctx context.Context, pageKey string) error
	Count(ctx context.Context) (int, error)
}

// NotFoundError is returned when a navigation resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
