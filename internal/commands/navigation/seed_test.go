package navcmd

import (
	"context"
	"testing"

	"github.com/memberweb/cms/internal/navigation"
)

func TestSeedNavigationHandlerSeedsEmptyStore(t *testing.T) {
	repo := navigation.NewMemoryEntryRepository()
	svc := navigation.NewService(repo)
	handler := NewSeedNavigationHandler(svc, nil)
	ctx := context.Background()

	msg := SeedNavigationCommand{Entries: []navigation.SeedEntry{
		{PageKey: "home", DisplayName: "Home", ItemType: navigation.EntryTypeSystem,
			IsVisibleToGuests: true, IsVisibleToMembers: true, IsSystemItem: true},
		{PageKey: "about", DisplayName: "About", ItemType: navigation.EntryTypeStatic,
			SortOrder: 10, IsVisibleToGuests: true, IsVisibleToMembers: true},
	}}

	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("seeded %d entries, want 2", count)
	}

	// Second run is a no-op.
	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("second execute: %v", err)
	}
	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("repeat seed changed entry count to %d", count)
	}
}

func TestSeedNavigationHandlerRejectsEmptyPayload(t *testing.T) {
	svc := navigation.NewService(navigation.NewMemoryEntryRepository())
	handler := NewSeedNavigationHandler(svc, nil)

	if err := handler.Execute(context.Background(), SeedNavigationCommand{}); err == nil {
		t.Fatal("empty seed payload must fail validation")
	}
}

func TestInvalidateNavigationCacheHandler(t *testing.T) {
	svc := navigation.NewService(navigation.NewMemoryEntryRepository())
	handler := NewInvalidateNavigationCacheHandler(svc, nil)

	if err := handler.Execute(context.Background(), InvalidateNavigationCacheCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}
