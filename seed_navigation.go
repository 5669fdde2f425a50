package cms

import "github.com/memberweb/cms/internal/navigation"

// DefaultNavigationSeed returns the system and static entries created on an
// empty store. Home anchors every view; admin and logout are member-only
// system items; the remaining statics mirror the stock site layout.
func DefaultNavigationSeed() []navigation.SeedEntry {
	return []navigation.SeedEntry{
		{
			PageKey:            navigation.PageKeyHome,
			DisplayName:        "Home",
			ItemType:           navigation.EntryTypeSystem,
			SortOrder:          1,
			IsVisibleToGuests:  true,
			IsVisibleToMembers: true,
			IsSystemItem:       true,
		},
		{
			PageKey:            "about",
			DisplayName:        "About",
			ItemType:           navigation.EntryTypeStatic,
			SortOrder:          10,
			IsVisibleToGuests:  true,
			IsVisibleToMembers: true,
		},
		{
			PageKey:            "governance",
			DisplayName:        "Governance",
			ItemType:           navigation.EntryTypeStatic,
			SortOrder:          11,
			IsVisibleToGuests:  true,
			IsVisibleToMembers: true,
		},
		{
			PageKey:            "visions",
			DisplayName:        "Visions",
			ItemType:           navigation.EntryTypeStatic,
			SortOrder:          12,
			IsVisibleToGuests:  true,
			IsVisibleToMembers: true,
		},
		{
			PageKey:            "contact",
			DisplayName:        "Contact",
			ItemType:           navigation.EntryTypeStatic,
			SortOrder:          20,
			IsVisibleToGuests:  true,
			IsVisibleToMembers: true,
		},
		{
			PageKey:            navigation.PageKeyAdmin,
			DisplayName:        "Admin",
			ItemType:           navigation.EntryTypeSystem,
			SortOrder:          90,
			IsVisibleToGuests:  false,
			IsVisibleToMembers: true,
			IsSystemItem:       true,
			RequiredRoles:      []string{"admin"},
		},
		{
			PageKey:            navigation.PageKeyLogout,
			DisplayName:        "Log out",
			ItemType:           navigation.EntryTypeSystem,
			SortOrder:          99,
			IsVisibleToGuests:  false,
			IsVisibleToMembers: true,
			IsSystemItem:       true,
		},
	}
}
