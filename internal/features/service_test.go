package features

import (
	"context"
	"testing"
	"time"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewMemorySectionRepository(), WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateSectionInput{Title: "Welcome"}); err == nil {
		t.Fatal("missing page key must be rejected")
	}
	if _, err := svc.Create(ctx, CreateSectionInput{PageKey: "events"}); err == nil {
		t.Fatal("missing title must be rejected")
	}
}

func TestListForPageOrdersBySortOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []CreateSectionInput{
		{PageKey: "events", Title: "Second", SortOrder: 2, IsActive: true},
		{PageKey: "events", Title: "First", SortOrder: 1, IsActive: true},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Title, err)
		}
	}

	sections, err := svc.ListForPage(ctx, "events")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sections) != 2 || sections[0].Title != "First" || sections[1].Title != "Second" {
		t.Fatalf("sections wrong: %+v", sections)
	}
}

func TestRemoveForPageScopedToPage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateSectionInput{PageKey: "events", Title: "Drop", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateSectionInput{PageKey: "other", Title: "Keep", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.RemoveForPage(ctx, "events"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	gone, err := svc.ListForPage(ctx, "events")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("events still holds %d sections", len(gone))
	}
	kept, err := svc.ListForPage(ctx, "other")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("other holds %d sections, want 1", len(kept))
	}
}
