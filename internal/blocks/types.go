package blocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContentBlock is one markdown fragment rendered into a named slot of a
// custom page.
type ContentBlock struct {
	bun.BaseModel `bun:"table:content_blocks,alias:cb"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageKey   string    `bun:"page_key,notnull" json:"page_key"`
	Slot      string    `bun:"slot,notnull" json:"slot"`
	Title     string    `bun:"title" json:"title,omitempty"`
	Content   string    `bun:"content,notnull" json:"content"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RenderedBlock pairs a stored block with its HTML rendering.
type RenderedBlock struct {
	*ContentBlock
	HTML string `json:"html"`
}
