package custompages

import (
	"time"

	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/navigation"
)

type syncOp int

const (
	syncCreate syncOp = iota
	syncUpdate
	syncDelete
)

// SyncPlan describes the writes required to keep a custom page and its
// navigation entry consistent. A plan is computed purely from the desired
// page state and the current entry, then handed to a SyncStore which applies
// every write in a single atomic unit.
type SyncPlan struct {
	// Page is the page row to persist; nil when the plan only deletes.
	Page      *CustomPage
	PageIsNew bool

	// DeletePageKey removes the page row after any entry removal so that a
	// navigation entry never outlives its page.
	DeletePageKey string

	// Exactly one of CreateEntry, UpdateEntry, or DeleteEntryKey is set when
	// the navigation side changes; all may be zero when the page does not
	// participate in navigation.
	CreateEntry    *navigation.Entry
	UpdateEntry    *navigation.Entry
	DeleteEntryKey string
}

// planSync computes the page and entry writes for one operation. existing is
// the navigation entry currently registered at the page key, or nil.
func planSync(op syncOp, page *CustomPage, existing *navigation.Entry, now time.Time, newID func() uuid.UUID) (*SyncPlan, error) {
	if existing != nil && existing.ItemType != navigation.EntryTypeCustom {
		// System and static entries own their keys; pages never attach to
		// them and never remove them.
		return nil, &SyncConflictError{PageKey: existing.PageKey, EntryType: existing.ItemType}
	}

	switch op {
	case syncDelete:
		plan := &SyncPlan{DeletePageKey: page.PageKey}
		if existing != nil {
			plan.DeleteEntryKey = existing.PageKey
		}
		return plan, nil

	case syncCreate:
		plan := &SyncPlan{Page: page, PageIsNew: true}
		if page.WantsNavigationEntry() {
			plan.CreateEntry = newEntryForPage(page, now, newID)
		}
		return plan, nil

	case syncUpdate:
		plan := &SyncPlan{Page: page}
		switch {
		case page.WantsNavigationEntry() && existing == nil:
			plan.CreateEntry = newEntryForPage(page, now, newID)
		case page.WantsNavigationEntry() && existing != nil:
			plan.UpdateEntry = entryFromPage(page, existing, now)
		case !page.WantsNavigationEntry() && existing != nil:
			plan.DeleteEntryKey = existing.PageKey
		}
		return plan, nil
	}
	return nil, ErrSyncConflict
}

// newEntryForPage builds the navigation entry registered when a page first
// opts into the main navigation. Fresh entries start active; guest
// visibility follows whether the page restricts roles.
func newEntryForPage(page *CustomPage, now time.Time, newID func() uuid.UUID) *navigation.Entry {
	entry := &navigation.Entry{
		ID:                 newID(),
		PageKey:            page.PageKey,
		DisplayName:        page.DisplayName,
		ItemType:           navigation.EntryTypeCustom,
		SortOrder:          page.SortOrder,
		IsVisibleToGuests:  len(page.RoleList()) == 0,
		IsVisibleToMembers: true,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return entry
}

// entryFromPage projects the page's current state onto its linked entry.
// Sort-order overrides and system flags on the entry are left untouched.
func entryFromPage(page *CustomPage, existing *navigation.Entry, now time.Time) *navigation.Entry {
	entry := *existing
	entry.DisplayName = page.DisplayName
	entry.SortOrder = page.SortOrder
	entry.IsVisibleToGuests = len(page.RoleList()) == 0
	entry.IsVisibleToMembers = true
	entry.IsActive = page.IsActive
	entry.UpdatedAt = now
	return &entry
}
