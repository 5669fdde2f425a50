package navigation

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewEntryRecordRepository creates a go-repository-bun repository for Entry records.
func NewEntryRecordRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "page_key"
		},
		GetIdentifierValue: func(e *Entry) string {
			return e.PageKey
		},
	})
}
