package features

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FeatureSection is a highlighted callout rendered on a custom page, with an
// optional icon and outbound link.
type FeatureSection struct {
	bun.BaseModel `bun:"table:feature_sections,alias:fe"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageKey   string    `bun:"page_key,notnull" json:"page_key"`
	Title     string    `bun:"title,notnull" json:"title"`
	Body      string    `bun:"body" json:"body,omitempty"`
	Icon      string    `bun:"icon" json:"icon,omitempty"`
	LinkURL   string    `bun:"link_url" json:"link_url,omitempty"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
