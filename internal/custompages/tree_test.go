package custompages

import (
	"testing"

	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/navigation"
)

func treePage(key, parent string, sort int) *CustomPage {
	page := &CustomPage{
		ID:               uuid.New(),
		PageKey:          key,
		Title:            key,
		DisplayName:      key,
		IsActive:         true,
		ShowInNavigation: true,
		NavigationType:   NavigationTypeMain,
		SortOrder:        sort,
	}
	if parent != "" {
		page.NavigationType = NavigationTypeDropdownChild
		page.ParentPageKey = parent
	}
	return page
}

func TestBuildTreeNestsChildrenUnderPages(t *testing.T) {
	pages := []*CustomPage{
		treePage("events", "", 30),
		treePage("calendar", "events", 1),
		treePage("archive", "events", 2),
	}

	tree := BuildTree(pages, TreeOptions{})
	if len(tree) != 1 {
		t.Fatalf("tree has %d roots, want 1", len(tree))
	}
	root := tree[0]
	if root.PageKey != "events" || root.Synthetic {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if root.Children[0].PageKey != "calendar" || root.Children[1].PageKey != "archive" {
		t.Fatalf("children out of order: %s, %s", root.Children[0].PageKey, root.Children[1].PageKey)
	}
}

func TestBuildTreeSynthesizesLegacyParent(t *testing.T) {
	pages := []*CustomPage{
		treePage("bylaws", "governance", 2),
		treePage("minutes", "governance", 1),
	}

	tree := BuildTree(pages, TreeOptions{})
	if len(tree) != 1 {
		t.Fatalf("tree has %d roots, want 1", len(tree))
	}
	header := tree[0]
	if !header.Synthetic {
		t.Fatal("legacy parent must be marked synthetic")
	}
	if header.PageKey != "governance" || header.DisplayName != "Governance" || header.SortOrder != 11 {
		t.Fatalf("legacy header malformed: %+v", header)
	}
	if len(header.Children) != 2 || header.Children[0].PageKey != "minutes" {
		t.Fatalf("legacy children wrong: %+v", header.Children)
	}
}

func TestBuildTreeSkipsChildlessLegacyParents(t *testing.T) {
	tree := BuildTree([]*CustomPage{treePage("events", "", 30)}, TreeOptions{})
	for _, node := range tree {
		if node.Synthetic {
			t.Fatalf("childless legacy header must not appear: %+v", node)
		}
	}
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	pages := []*CustomPage{
		treePage("events", "", 30),
		treePage("lost", "no-such-parent", 1),
	}

	tree := BuildTree(pages, TreeOptions{})
	if len(tree) != 1 || tree[0].PageKey != "events" {
		t.Fatalf("orphan must be dropped, got %+v", tree)
	}
}

func TestBuildTreeExcludesInactiveAndHidden(t *testing.T) {
	inactive := treePage("old", "", 1)
	inactive.IsActive = false
	hidden := treePage("secret", "", 2)
	hidden.ShowInNavigation = false

	tree := BuildTree([]*CustomPage{inactive, hidden, treePage("events", "", 3)}, TreeOptions{})
	if len(tree) != 1 || tree[0].PageKey != "events" {
		t.Fatalf("only events should remain, got %+v", tree)
	}
}

func TestBuildTreeOrdersBySortThenName(t *testing.T) {
	a := treePage("zeta", "", 10)
	a.DisplayName = "Zeta"
	b := treePage("alpha", "", 10)
	b.DisplayName = "Alpha"
	c := treePage("first", "", 1)
	c.DisplayName = "First"

	tree := BuildTree([]*CustomPage{a, b, c}, TreeOptions{})
	got := []string{tree[0].PageKey, tree[1].PageKey, tree[2].PageKey}
	want := []string{"first", "alpha", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestBuildTreeChildTiesBreakOnDisplayName(t *testing.T) {
	b := treePage("beta", "events", 5)
	b.DisplayName = "Beta"
	a := treePage("alpha", "events", 5)
	a.DisplayName = "Alpha"

	tree := BuildTree([]*CustomPage{treePage("events", "", 1), b, a}, TreeOptions{})
	children := tree[0].Children
	if len(children) != 2 || children[0].DisplayName != "Alpha" || children[1].DisplayName != "Beta" {
		t.Fatalf("tied children must order by display name: %+v", children)
	}
}

func TestBuildTreeResolvesURLs(t *testing.T) {
	tree := BuildTree([]*CustomPage{treePage("events", "", 1)}, TreeOptions{
		URLResolver: PathResolver("/pages"),
	})
	if tree[0].URL != "/pages/events" {
		t.Fatalf("url %q, want /pages/events", tree[0].URL)
	}
}

func TestFilterTreeDropsRestrictedNodesForGuests(t *testing.T) {
	restricted := treePage("board-docs", "", 5)
	restricted.RequiredRoles = "board"
	tree := BuildTree([]*CustomPage{treePage("events", "", 1), restricted}, TreeOptions{})

	guestView := FilterTree(tree, navigation.Guest())
	if len(guestView) != 1 || guestView[0].PageKey != "events" {
		t.Fatalf("guest view %+v, want only events", guestView)
	}

	memberView := FilterTree(tree, navigation.Member("member"))
	if len(memberView) != 1 {
		t.Fatalf("non-board member view has %d nodes, want 1", len(memberView))
	}

	boardView := FilterTree(tree, navigation.Member("board"))
	if len(boardView) != 2 {
		t.Fatalf("board view has %d nodes, want 2", len(boardView))
	}
}

func TestFilterTreeRemovesEmptiedSyntheticHeaders(t *testing.T) {
	restricted := treePage("bylaws", "governance", 1)
	restricted.RequiredRoles = "board"
	tree := BuildTree([]*CustomPage{restricted}, TreeOptions{})
	if len(tree) != 1 || !tree[0].Synthetic {
		t.Fatalf("expected synthetic governance header, got %+v", tree)
	}

	guestView := FilterTree(tree, navigation.Guest())
	if len(guestView) != 0 {
		t.Fatalf("emptied synthetic header must disappear, got %+v", guestView)
	}
}

func TestFilterTreeDoesNotMutateInput(t *testing.T) {
	restricted := treePage("bylaws", "governance", 1)
	restricted.RequiredRoles = "board"
	open := treePage("minutes", "governance", 2)
	tree := BuildTree([]*CustomPage{restricted, open}, TreeOptions{})

	_ = FilterTree(tree, navigation.Guest())
	if len(tree[0].Children) != 2 {
		t.Fatalf("filtering mutated the source tree: %+v", tree[0].Children)
	}
}
