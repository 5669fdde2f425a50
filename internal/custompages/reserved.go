package custompages

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// KeyPolicy defines the reserved page keys and prefixes that custom pages may
// not claim. Keys on the reserved list belong to system routes; prefixes
// guard whole route families (API endpoints, auth flows, asset mounts).
type KeyPolicy struct {
	Reserved         []string
	ReservedPrefixes []string
}

// DefaultKeyPolicy returns the route reservations for the stock site layout.
func DefaultKeyPolicy() KeyPolicy {
	return KeyPolicy{
		Reserved: []string{
			"home", "admin", "logout", "login", "register",
			"error", "search", "sitemap",
		},
		ReservedPrefixes: []string{
			"api", "auth", "admin-", "static", "assets",
		},
	}
}

// NormalizePageKey applies slug normalization to a caller supplied key.
func NormalizePageKey(value string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", ErrPageKeyRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil {
		return "", ErrPageKeyInvalid
	}
	return normalized, nil
}

// Validate reports whether the key is well formed and unreserved. The key is
// expected to have gone through NormalizePageKey first.
func (p KeyPolicy) Validate(pageKey string) error {
	if strings.TrimSpace(pageKey) == "" {
		return ErrPageKeyRequired
	}
	if !slug.IsValid(pageKey) {
		return ErrPageKeyInvalid
	}
	for _, reserved := range p.Reserved {
		if pageKey == reserved {
			return ErrPageKeyReserved
		}
	}
	for _, prefix := range p.ReservedPrefixes {
		if prefix != "" && strings.HasPrefix(pageKey, prefix) {
			return ErrPageKeyReserved
		}
	}
	return nil
}
