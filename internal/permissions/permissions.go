package permissions

import (
	"context"
	"errors"
	"strings"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

const (
	ResourceNavigation = "navigation"
	ResourcePages      = "pages"
	ResourceBlocks     = "blocks"
	ResourceFAQs       = "faqs"
	ResourceFeatures   = "features"
)

const (
	NavigationRead   = "navigation:read"
	NavigationCreate = "navigation:create"
	NavigationUpdate = "navigation:update"

	PagesRead   = "pages:read"
	PagesCreate = "pages:create"
	PagesUpdate = "pages:update"
	PagesDelete = "pages:delete"
)

var ErrPermissionDenied = errors.New("permissions: denied")

type Error struct {
	Permission string
}

func (e Error) Error() string {
	if strings.TrimSpace(e.Permission) == "" {
		return "permission denied"
	}
	return "permission denied: " + e.Permission
}

func (e Error) Unwrap() error {
	return ErrPermissionDenied
}

// Join builds a permission token from resource and action.
func Join(resource string, action Action) string {
	res := normalizeToken(resource)
	act := normalizeToken(string(action))
	if res == "" || act == "" {
		return ""
	}
	return res + ":" + act
}

type Checker interface {
	Allowed(permission string) bool
}

type CheckerFunc func(permission string) bool

func (fn CheckerFunc) Allowed(permission string) bool {
	return fn(permission)
}

// Set is a static permission collection supporting "resource:*" and "*"
// wildcards.
type Set map[string]struct{}

func NewSet(perms ...string) Set {
	set := Set{}
	for _, perm := range perms {
		normalized := normalizePermission(perm)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func (s Set) Allowed(permission string) bool {
	if len(s) == 0 {
		return false
	}
	normalized := normalizePermission(permission)
	if normalized == "" {
		return false
	}
	if _, ok := s[normalized]; ok {
		return true
	}
	if resource, _, found := strings.Cut(normalized, ":"); found && resource != "" {
		if _, ok := s[resource+":*"]; ok {
			return true
		}
	}
	_, ok := s["*"]
	return ok
}

type contextKey string

const checkerKey contextKey = "cms.permissions.checker"

// WithChecker stores a permission checker on the context.
func WithChecker(ctx context.Context, checker Checker) context.Context {
	if ctx == nil || checker == nil {
		return ctx
	}
	return context.WithValue(ctx, checkerKey, checker)
}

// WithPermissions stores a static permission set on the context.
func WithPermissions(ctx context.Context, perms ...string) context.Context {
	if ctx == nil || len(perms) == 0 {
		return ctx
	}
	return WithChecker(ctx, NewSet(perms...))
}

// CheckerFromContext returns the configured permission checker if available.
func CheckerFromContext(ctx context.Context) Checker {
	if ctx == nil {
		return nil
	}
	switch typed := ctx.Value(checkerKey).(type) {
	case Checker:
		return typed
	case []string:
		return NewSet(typed...)
	default:
		return nil
	}
}

// Allowed reports whether the permission is granted for the context. A
// context without a checker allows everything; enforcement is opt-in.
func Allowed(ctx context.Context, permission string) bool {
	checker := CheckerFromContext(ctx)
	if checker == nil {
		return true
	}
	normalized := normalizePermission(permission)
	if normalized == "" {
		return true
	}
	return checker.Allowed(normalized)
}

// Require enforces a permission when a checker is present on the context.
func Require(ctx context.Context, permission string) error {
	normalized := normalizePermission(permission)
	if normalized == "" {
		return nil
	}
	checker := CheckerFromContext(ctx)
	if checker == nil {
		return nil
	}
	if checker.Allowed(normalized) {
		return nil
	}
	return Error{Permission: normalized}
}

func normalizePermission(permission string) string {
	return strings.ToLower(strings.TrimSpace(permission))
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
