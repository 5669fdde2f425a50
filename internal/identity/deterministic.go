package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NavigationEntryUUID derives the stable identity for a seeded navigation entry.
func NavigationEntryUUID(pageKey string) uuid.UUID {
	return UUID("memberweb-cms:navigation_entry:" + strings.ToLower(strings.TrimSpace(pageKey)))
}

// CustomPageUUID derives a stable identity for a custom page key.
func CustomPageUUID(pageKey string) uuid.UUID {
	return UUID("memberweb-cms:custom_page:" + strings.ToLower(strings.TrimSpace(pageKey)))
}

// ContentBlockUUID derives a stable identity for a content block within a page.
func ContentBlockUUID(pageKey, sectionName string) uuid.UUID {
	return UUID("memberweb-cms:content_block:" + strings.ToLower(strings.TrimSpace(pageKey)) + ":" + strings.ToLower(strings.TrimSpace(sectionName)))
}
