package navigation

import "testing"

func activeEntry(pageKey string) *Entry {
	return &Entry{
		PageKey:            pageKey,
		DisplayName:        pageKey,
		ItemType:           EntryTypeStatic,
		IsVisibleToGuests:  true,
		IsVisibleToMembers: true,
		IsActive:           true,
	}
}

func TestVisibleRoleRestrictedHiddenFromGuests(t *testing.T) {
	entry := activeEntry("board")
	entry.ItemType = EntryTypeRoleSpecific
	entry.RequiredRoles = EncodeRoles([]string{"board", "chair"})

	if Visible(entry, Guest()) {
		t.Fatal("guest should never see a role-restricted entry")
	}
	if Visible(entry, Member()) {
		t.Fatal("member without a matching role should not see entry")
	}
	if !Visible(entry, Member("chair")) {
		t.Fatal("member with a matching role should see entry")
	}
}

func TestVisibleRoleCheckTrumpsGuestFlag(t *testing.T) {
	entry := activeEntry("board")
	entry.RequiredRoles = EncodeRoles([]string{"board"})
	entry.IsVisibleToGuests = true

	if Visible(entry, Guest()) {
		t.Fatal("guest flag must not override the role requirement")
	}
}

func TestVisibleInactiveHiddenFromEveryone(t *testing.T) {
	entry := activeEntry("news")
	entry.IsActive = false

	if Visible(entry, Guest()) || Visible(entry, Member("admin")) {
		t.Fatal("inactive entry should be hidden from every viewer")
	}
}

func TestVisibleHomeForAllViewers(t *testing.T) {
	home := activeEntry(PageKeyHome)
	home.ItemType = EntryTypeSystem
	home.IsSystemItem = true

	viewers := []Viewer{Guest(), Member(), Member("admin"), Member("board", "chair")}
	for _, viewer := range viewers {
		if !Visible(home, viewer) {
			t.Fatalf("home must be visible to viewer %+v", viewer)
		}
	}
}

func TestVisibleMemberFlag(t *testing.T) {
	entry := activeEntry("guests-only")
	entry.IsVisibleToMembers = false

	if !Visible(entry, Guest()) {
		t.Fatal("guest flag should allow guests")
	}
	if Visible(entry, Member()) {
		t.Fatal("member flag should hide entry from members")
	}
}

func TestEffectiveSortOrderVerbatim(t *testing.T) {
	guestOrder := 5
	memberOrder := 7
	entry := activeEntry("events")
	entry.SortOrder = 3
	entry.GuestSortOrder = &guestOrder
	entry.MemberSortOrder = &memberOrder

	if got := EffectiveSortOrder(entry, Guest()); got != 5 {
		t.Fatalf("guest order = %d, want 5", got)
	}
	if got := EffectiveSortOrder(entry, Member()); got != 7 {
		t.Fatalf("member order = %d, want 7", got)
	}

	entry.GuestSortOrder = nil
	entry.MemberSortOrder = nil
	if got := EffectiveSortOrder(entry, Guest()); got != 3 {
		t.Fatalf("fallback order = %d, want 3", got)
	}
}

func TestVisibleEntriesFilteredAndSorted(t *testing.T) {
	first := activeEntry("first")
	first.SortOrder = 1
	second := activeEntry("second")
	second.SortOrder = 2
	guestEarly := 0
	second.GuestSortOrder = &guestEarly
	hidden := activeEntry("hidden")
	hidden.IsActive = false
	restricted := activeEntry("board")
	restricted.RequiredRoles = EncodeRoles([]string{"board"})

	entries := []*Entry{first, second, hidden, restricted}

	visible := VisibleEntries(entries, Guest())
	if len(visible) != 2 {
		t.Fatalf("visible entries = %d, want 2", len(visible))
	}
	if visible[0].PageKey != "second" || visible[1].PageKey != "first" {
		t.Fatalf("guest override should sort second before first, got %s, %s",
			visible[0].PageKey, visible[1].PageKey)
	}

	visible = VisibleEntries(entries, Member("board"))
	if len(visible) != 3 {
		t.Fatalf("board member should see 3 entries, got %d", len(visible))
	}
}
