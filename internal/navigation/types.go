package navigation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	EntryTypeStatic       = "static"
	EntryTypeSystem       = "system"
	EntryTypeRoleSpecific = "role-specific"
	EntryTypeCustom       = "custom"
)

// Protected page keys. Entries with these keys are owned by the module: they
// are seeded once at boot, never deleted, and their invariants are re-forced
// on every write.
const (
	PageKeyHome   = "home"
	PageKeyAdmin  = "admin"
	PageKeyLogout = "logout"
)

// Entry is a single navigation-visible page registration.
type Entry struct {
	bun.BaseModel `bun:"table:navigation_entries,alias:ne"`

	ID                 uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageKey            string    `bun:"page_key,notnull" json:"page_key"`
	DisplayName        string    `bun:"display_name,notnull" json:"display_name"`
	ItemType           string    `bun:"item_type,notnull,default:'static'" json:"item_type"`
	SortOrder          int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	GuestSortOrder     *int      `bun:"guest_sort_order" json:"guest_sort_order,omitempty"`
	MemberSortOrder    *int      `bun:"member_sort_order" json:"member_sort_order,omitempty"`
	IsVisibleToGuests  bool      `bun:"is_visible_to_guests,notnull,default:true" json:"is_visible_to_guests"`
	IsVisibleToMembers bool      `bun:"is_visible_to_members,notnull,default:true" json:"is_visible_to_members"`
	IsActive           bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	IsSystemItem       bool      `bun:"is_system_item,notnull,default:false" json:"is_system_item"`
	// RequiredRoles is comma-encoded in storage; use RoleList/EncodeRoles to
	// convert to and from role slices.
	RequiredRoles string    `bun:"required_roles" json:"required_roles,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RoleList decodes the comma-encoded role set.
func (e *Entry) RoleList() []string {
	return DecodeRoles(e.RequiredRoles)
}

// Viewer describes the requester of a navigation view. A zero Viewer is an
// anonymous guest.
type Viewer struct {
	IsAuthenticated bool
	Roles           []string
}

// Guest returns the anonymous viewer.
func Guest() Viewer {
	return Viewer{}
}

// Member returns an authenticated viewer holding the provided roles.
func Member(roles ...string) Viewer {
	return Viewer{IsAuthenticated: true, Roles: roles}
}

// HasAnyRole reports whether the viewer holds at least one of the required
// roles. An empty requirement never matches.
func (v Viewer) HasAnyRole(required []string) bool {
	if len(required) == 0 || len(v.Roles) == 0 {
		return false
	}
	held := make(map[string]struct{}, len(v.Roles))
	for _, role := range v.Roles {
		held[normalizeRole(role)] = struct{}{}
	}
	for _, role := range required {
		if _, ok := held[normalizeRole(role)]; ok {
			return true
		}
	}
	return false
}

// EncodeRoles serialises a role set into the comma-encoded storage form.
// Empty and duplicate entries are dropped; order is preserved.
func EncodeRoles(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		normalized := normalizeRole(role)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return strings.Join(out, ",")
}

// DecodeRoles parses the comma-encoded storage form into a role slice.
func DecodeRoles(encoded string) []string {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if role := normalizeRole(part); role != "" {
			out = append(out, role)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeRole(role string) string {
	return strings.TrimSpace(role)
}

type viewerContextKey struct{}

// WithViewer annotates the context with the viewer descriptor supplied by the
// host application's auth layer.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerContextKey{}, viewer)
}

// ViewerFromContext extracts the viewer descriptor; absent annotations
// resolve to the anonymous guest.
func ViewerFromContext(ctx context.Context) Viewer {
	if ctx == nil {
		return Guest()
	}
	if viewer, ok := ctx.Value(viewerContextKey{}).(Viewer); ok {
		return viewer
	}
	return Guest()
}
