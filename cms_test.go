package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/memberweb/cms/internal/custompages"
	"github.com/memberweb/cms/internal/navigation"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logging.Enabled = false

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if err := module.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return module
}

func TestStartSeedsDefaultNavigation(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	entries, err := module.Navigation().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != len(DefaultNavigationSeed()) {
		t.Fatalf("seeded %d entries, want %d", len(entries), len(DefaultNavigationSeed()))
	}

	// Restarting must not duplicate the seed.
	if err := module.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}
	entries, err = module.Navigation().List(ctx)
	if err != nil {
		t.Fatalf("list after restart: %v", err)
	}
	if len(entries) != len(DefaultNavigationSeed()) {
		t.Fatalf("restart duplicated seed: %d entries", len(entries))
	}
}

func TestSeededVisibilityByViewer(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	guestEntries, err := module.Navigation().VisibleEntries(ctx, navigation.Guest())
	if err != nil {
		t.Fatalf("guest entries: %v", err)
	}
	for _, entry := range guestEntries {
		if entry.PageKey == "admin" || entry.PageKey == "logout" {
			t.Fatalf("guest must not see %q", entry.PageKey)
		}
	}

	adminEntries, err := module.Navigation().VisibleEntries(ctx, navigation.Member("admin"))
	if err != nil {
		t.Fatalf("admin entries: %v", err)
	}
	seen := map[string]bool{}
	for _, entry := range adminEntries {
		seen[entry.PageKey] = true
	}
	if !seen["admin"] || !seen["logout"] || !seen["home"] {
		t.Fatalf("admin view missing system entries: %v", seen)
	}

	memberEntries, err := module.Navigation().VisibleEntries(ctx, navigation.Member("member"))
	if err != nil {
		t.Fatalf("member entries: %v", err)
	}
	for _, entry := range memberEntries {
		if entry.PageKey == "admin" {
			t.Fatal("admin entry requires the admin role")
		}
	}
}

func TestPageRegistrationEndToEnd(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	page, err := module.Pages().Create(ctx, custompages.CreatePageInput{
		PageKey:          "events",
		Title:            "Events",
		DisplayName:      "Events",
		IsActive:         true,
		ShowInNavigation: true,
		NavigationType:   custompages.NavigationTypeMain,
		SortOrder:        30,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	entry, err := module.Navigation().Get(ctx, page.PageKey)
	if err != nil {
		t.Fatalf("linked entry: %v", err)
	}
	if entry.ItemType != navigation.EntryTypeCustom {
		t.Fatalf("entry type %q, want custom", entry.ItemType)
	}

	tree, err := module.Pages().NavigationTree(ctx, navigation.Guest())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 1 || tree[0].PageKey != "events" {
		t.Fatalf("tree %+v, want only events", tree)
	}

	if err := module.Pages().Delete(ctx, "events"); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if _, err := module.Navigation().Get(ctx, "events"); err == nil {
		t.Fatal("entry must be removed with its page")
	}
}

func TestRegisterAdminRoutes(t *testing.T) {
	module := newTestModule(t)

	mux := http.NewServeMux()
	if err := module.RegisterAdminRoutes(mux); err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/navigation", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}
