package blocks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewMemoryBlockRepository(), WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateBlockInput{Slot: "hero", Content: "x"}); err == nil {
		t.Fatal("missing page key must be rejected")
	}
	if _, err := svc.Create(ctx, CreateBlockInput{PageKey: "events", Content: "x"}); err == nil {
		t.Fatal("missing slot must be rejected")
	}
	if _, err := svc.Create(ctx, CreateBlockInput{PageKey: "events", Slot: "hero"}); err == nil {
		t.Fatal("missing content must be rejected")
	}
}

func TestListForPageOrdersBySortOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []CreateBlockInput{
		{PageKey: "events", Slot: "footer", Content: "f", SortOrder: 2, IsActive: true},
		{PageKey: "events", Slot: "hero", Content: "h", SortOrder: 1, IsActive: true},
		{PageKey: "other", Slot: "hero", Content: "o", IsActive: true},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Slot, err)
		}
	}

	blocks, err := svc.ListForPage(ctx, "events")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("list returned %d blocks, want 2", len(blocks))
	}
	if blocks[0].Slot != "hero" || blocks[1].Slot != "footer" {
		t.Fatalf("blocks out of order: %s, %s", blocks[0].Slot, blocks[1].Slot)
	}
}

func TestRenderForPageProducesHTMLAndSkipsInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateBlockInput{
		PageKey: "events", Slot: "hero", Content: "# Welcome\n\nSee our **events**.", IsActive: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateBlockInput{
		PageKey: "events", Slot: "draft", Content: "unpublished", IsActive: false,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rendered, err := svc.RenderForPage(ctx, "events")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(rendered) != 1 {
		t.Fatalf("rendered %d blocks, want 1", len(rendered))
	}
	html := rendered[0].HTML
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>events</strong>") {
		t.Fatalf("unexpected html: %q", html)
	}
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBlockInput{
		PageKey: "events", Slot: "hero", Content: "original", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	content := "updated"
	updated, err := svc.Update(ctx, UpdateBlockInput{ID: created.ID, Content: &content})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "updated" || updated.Slot != "hero" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	empty := ""
	if _, err := svc.Update(ctx, UpdateBlockInput{ID: created.ID, Content: &empty}); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("got %v, want ErrContentRequired", err)
	}
}

func TestRemoveForPageDeletesOnlyThatPage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateBlockInput{PageKey: "events", Slot: "hero", Content: "x", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateBlockInput{PageKey: "other", Slot: "hero", Content: "y", IsActive: true}); err != nil {
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
		t.Fatalf("events still holds %d blocks", len(gone))
	}
	kept, err := svc.ListForPage(ctx, "other")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("other holds %d blocks, want 1", len(kept))
	}
}
