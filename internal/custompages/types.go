package custompages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/memberweb/cms/internal/navigation"
)

const (
	// NavigationTypeMain places the page at the top level of the menu.
	NavigationTypeMain = "main"
	// NavigationTypeDropdownChild nests the page under a parent page key.
	NavigationTypeDropdownChild = "dropdown-child"
)

// CustomPage is an admin-authored page that may register itself in the main
// navigation and/or hang below a parent in the rendered menu tree.
type CustomPage struct {
	bun.BaseModel `bun:"table:custom_pages,alias:cp"`

	ID               uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageKey          string    `bun:"page_key,notnull" json:"page_key"`
	Title            string    `bun:"title,notnull" json:"title"`
	DisplayName      string    `bun:"display_name,notnull" json:"display_name"`
	Description      *string   `bun:"description" json:"description,omitempty"`
	IsActive         bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	ShowInNavigation bool      `bun:"show_in_navigation,notnull,default:false" json:"show_in_navigation"`
	NavigationType   string    `bun:"navigation_type,notnull,default:'main'" json:"navigation_type"`
	ParentPageKey    string    `bun:"parent_page_key" json:"parent_page_key,omitempty"`
	SortOrder        int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	// RequiredRoles is comma-encoded in storage; empty means the page is public.
	RequiredRoles string    `bun:"required_roles" json:"required_roles,omitempty"`
	CreatedBy     uuid.UUID `bun:"created_by,notnull,type:uuid" json:"created_by"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RoleList decodes the comma-encoded role set.
func (p *CustomPage) RoleList() []string {
	return navigation.DecodeRoles(p.RequiredRoles)
}

// WantsNavigationEntry reports whether the page should own a linked
// navigation entry: shown in navigation at the top level.
func (p *CustomPage) WantsNavigationEntry() bool {
	return p != nil && p.ShowInNavigation && p.NavigationType == NavigationTypeMain
}
