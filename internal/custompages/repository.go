package custompages

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPageRecordRepository creates a go-repository-bun repository for CustomPage records.
func NewPageRecordRepository(db *bun.DB) repository.Repository[*CustomPage] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CustomPage]{
		NewRecord: func() *CustomPage { return &CustomPage{} },
		GetID: func(p *CustomPage) uuid.UUID {
			return p.ID
		},
		SetID: func(p *CustomPage, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "page_key"
		},
		GetIdentifierValue: func(p *CustomPage) string {
			return p.PageKey
		},
	})
}
