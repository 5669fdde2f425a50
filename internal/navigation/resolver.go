package navigation

import (
	"slices"
	"strings"
)

// Visible reports whether the entry should appear in the navigation for the
// viewer. The check is total: malformed role sets simply never match and the
// entry stays hidden.
func Visible(entry *Entry, viewer Viewer) bool {
	if entry == nil || !entry.IsActive {
		return false
	}

	// Role requirements trump the guest/member flags.
	if required := entry.RoleList(); len(required) > 0 {
		if !viewer.IsAuthenticated || !viewer.HasAnyRole(required) {
			return false
		}
	}

	if viewer.IsAuthenticated {
		return entry.IsVisibleToMembers
	}
	return entry.IsVisibleToGuests
}

// EffectiveSortOrder resolves the sort position for the viewer: the
// guest/member override when present, otherwise the default. The stored value
// is returned verbatim.
func EffectiveSortOrder(entry *Entry, viewer Viewer) int {
	if entry == nil {
		return 0
	}
	if viewer.IsAuthenticated {
		if entry.MemberSortOrder != nil {
			return *entry.MemberSortOrder
		}
		return entry.SortOrder
	}
	if entry.GuestSortOrder != nil {
		return *entry.GuestSortOrder
	}
	return entry.SortOrder
}

// VisibleEntries filters entries through Visible and returns them ordered by
// effective sort order ascending, display name ascending on ties. The input
// slice is not mutated.
func VisibleEntries(entries []*Entry, viewer Viewer) []*Entry {
	visible := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if Visible(entry, viewer) {
			visible = append(visible, entry)
		}
	}
	slices.SortStableFunc(visible, func(a, b *Entry) int {
		if delta := EffectiveSortOrder(a, viewer) - EffectiveSortOrder(b, viewer); delta != 0 {
			return delta
		}
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
	return visible
}
