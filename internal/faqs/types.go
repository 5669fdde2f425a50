package faqs

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Section groups FAQ items under a heading on a custom page.
type Section struct {
	bun.BaseModel `bun:"table:faq_sections,alias:fs"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageKey   string    `bun:"page_key,notnull" json:"page_key"`
	Title     string    `bun:"title,notnull" json:"title"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Items []*Item `bun:"rel:has-many,join:id=section_id" json:"items,omitempty"`
}

// Item is one question/answer pair inside a section.
type Item struct {
	bun.BaseModel `bun:"table:faq_items,alias:fi"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	SectionID uuid.UUID `bun:"section_id,notnull,type:uuid" json:"section_id"`
	Question  string    `bun:"question,notnull" json:"question"`
	Answer    string    `bun:"answer,notnull" json:"answer"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
