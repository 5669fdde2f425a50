package faqs

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

func TestSectionAndItemLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	section, err := svc.CreateSection(ctx, CreateSectionInput{
		PageKey: "events", Title: "General", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	for _, in := range []AddItemInput{
		{SectionID: section.ID, Question: "When?", Answer: "Saturdays.", SortOrder: 2},
		{SectionID: section.ID, Question: "Where?", Answer: "The hall.", SortOrder: 1},
	} {
		if _, err := svc.AddItem(ctx, in); err != nil {
			t.Fatalf("add item %q: %v", in.Question, err)
		}
	}

	sections, err := svc.ListForPage(ctx, "events")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("listed %d sections, want 1", len(sections))
	}
	items := sections[0].Items
	if len(items) != 2 {
		t.Fatalf("section has %d items, want 2", len(items))
	}
	if items[0].Question != "Where?" || items[1].Question != "When?" {
		t.Fatalf("items out of order: %s, %s", items[0].Question, items[1].Question)
	}
}

func TestAddItemValidatesQuestionAndAnswer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	section, err := svc.CreateSection(ctx, CreateSectionInput{PageKey: "events", Title: "General", IsActive: true})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	if _, err := svc.AddItem(ctx, AddItemInput{SectionID: section.ID, Answer: "a"}); err == nil {
		t.Fatal("missing question must be rejected")
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SectionID: section.ID, Question: "q"}); err == nil {
		t.Fatal("missing answer must be rejected")
	}
}

func TestRemoveForPageDeletesSectionsAndItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	section, err := svc.CreateSection(ctx, CreateSectionInput{PageKey: "events", Title: "General", IsActive: true})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SectionID: section.ID, Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.CreateSection(ctx, CreateSectionInput{PageKey: "other", Title: "Keep", IsActive: true}); err != nil {
		t.Fatalf("create other: %v", err)
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
