package navigation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (Service, EntryRepository) {
	t.Helper()
	repo := NewMemoryEntryRepository()
	svc := NewService(repo, WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
	return svc, repo
}

func TestCreateRejectsProtectedKeys(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, key := range []string{PageKeyHome, PageKeyAdmin, PageKeyLogout} {
		_, err := svc.Create(ctx, CreateEntryInput{
			PageKey:     key,
			DisplayName: "X",
			ItemType:    EntryTypeStatic,
		})
		if !errors.Is(err, ErrPageKeyProtected) {
			t.Fatalf("create %q: got %v, want ErrPageKeyProtected", key, err)
		}
	}
}

func TestCreateRejectsRoleSpecificWithoutRoles(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateEntryInput{
		PageKey:     "board",
		DisplayName: "Board",
		ItemType:    EntryTypeRoleSpecific,
	})
	if !errors.Is(err, ErrRolesRequired) {
		t.Fatalf("got %v, want ErrRolesRequired", err)
	}
}

func TestCreateRejectsDuplicateKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateEntryInput{PageKey: "news", DisplayName: "News", ItemType: EntryTypeStatic, IsActive: true}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, input); !errors.Is(err, ErrPageKeyExists) {
		t.Fatalf("got %v, want ErrPageKeyExists", err)
	}
}

func TestCreateRejectsInvalidCharset(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateEntryInput{
		PageKey:     "bad key!",
		DisplayName: "Bad",
		ItemType:    EntryTypeStatic,
	})
	if err == nil {
		t.Fatal("expected validation error for invalid page key")
	}
}

func TestGetReturnsSyntheticHomeWhenMissing(t *testing.T) {
	svc, _ := newTestService(t)

	entry, err := svc.Get(context.Background(), PageKeyHome)
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if entry.PageKey != PageKeyHome || !entry.IsSystemItem || !entry.IsActive {
		t.Fatalf("synthetic home malformed: %+v", entry)
	}
	if !entry.IsVisibleToGuests || !entry.IsVisibleToMembers {
		t.Fatal("synthetic home must be visible to every viewer")
	}
}

func TestGetUnknownKeyReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("got %v, want ErrEntryNotFound", err)
	}
}

func TestUpdateSilentlyRestoresAdminInvariants(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, err := svc.EnsureSeed(ctx, []SeedEntry{{
		PageKey:            PageKeyAdmin,
		DisplayName:        "Admin",
		ItemType:           EntryTypeSystem,
		SortOrder:          90,
		IsVisibleToMembers: true,
		IsSystemItem:       true,
	}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	notSystem := false
	inactive := false
	updated, err := svc.Update(ctx, UpdateEntryInput{
		PageKey:      PageKeyAdmin,
		IsSystemItem: &notSystem,
		IsActive:     &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsSystemItem || !updated.IsActive {
		t.Fatalf("admin invariants must be restored, got %+v", updated)
	}

	stored, err := repo.GetByPageKey(ctx, PageKeyAdmin)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if !stored.IsSystemItem || !stored.IsActive {
		t.Fatalf("stored admin lost invariants: %+v", stored)
	}
}

func TestUpdateHomeForcesVisibilityAndClearsRoles(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.EnsureSeed(ctx, []SeedEntry{{
		PageKey:            PageKeyHome,
		DisplayName:        "Home",
		ItemType:           EntryTypeSystem,
		IsVisibleToGuests:  true,
		IsVisibleToMembers: true,
		IsSystemItem:       true,
	}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	hide := false
	updated, err := svc.Update(ctx, UpdateEntryInput{
		PageKey:           PageKeyHome,
		IsVisibleToGuests: &hide,
		RequiredRoles:     []string{"admin"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsVisibleToGuests || !updated.IsVisibleToMembers {
		t.Fatalf("home visibility must be forced on, got %+v", updated)
	}
	if updated.RequiredRoles != "" {
		t.Fatalf("home roles must stay empty, got %q", updated.RequiredRoles)
	}
}

func TestUpdateRoleSpecificRequiresRoles(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateEntryInput{
		PageKey:       "board",
		DisplayName:   "Board",
		ItemType:      EntryTypeRoleSpecific,
		RequiredRoles: []string{"board"},
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, UpdateEntryInput{
		PageKey:       "board",
		RequiredRoles: []string{},
	})
	if !errors.Is(err, ErrRolesRequired) {
		t.Fatalf("got %v, want ErrRolesRequired", err)
	}

	stored, err := repo.GetByPageKey(ctx, "board")
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.RequiredRoles != created.RequiredRoles {
		t.Fatalf("rejected update must not mutate the stored entry: %q != %q",
			stored.RequiredRoles, created.RequiredRoles)
	}
}

func TestEnsureSeedIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seeds := []SeedEntry{
		{PageKey: PageKeyHome, DisplayName: "Home", ItemType: EntryTypeSystem, IsVisibleToGuests: true, IsVisibleToMembers: true, IsSystemItem: true},
		{PageKey: "about", DisplayName: "About", ItemType: EntryTypeStatic, SortOrder: 10, IsVisibleToGuests: true, IsVisibleToMembers: true},
	}

	created, err := svc.EnsureSeed(ctx, seeds)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if created != 2 {
		t.Fatalf("first seed created %d, want 2", created)
	}

	created, err = svc.EnsureSeed(ctx, seeds)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed created %d, want 0", created)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("store holds %d entries, want 2", count)
	}
}
