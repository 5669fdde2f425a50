package permissions

import (
	"context"
	"errors"
	"testing"
)

func TestRequireWithoutCheckerAllows(t *testing.T) {
	if err := Require(context.Background(), PagesDelete); err != nil {
		t.Fatalf("no checker must allow: %v", err)
	}
}

func TestRequireWithSet(t *testing.T) {
	ctx := WithPermissions(context.Background(), PagesRead, NavigationRead)

	if err := Require(ctx, PagesRead); err != nil {
		t.Fatalf("granted permission denied: %v", err)
	}
	err := Require(ctx, PagesDelete)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	var detail Error
	if !errors.As(err, &detail) || detail.Permission != PagesDelete {
		t.Fatalf("denied detail missing: %v", err)
	}
}

func TestSetWildcards(t *testing.T) {
	resourceWide := NewSet("pages:*")
	if !resourceWide.Allowed(PagesDelete) || !resourceWide.Allowed(PagesRead) {
		t.Fatal("resource wildcard must grant all page actions")
	}
	if resourceWide.Allowed(NavigationRead) {
		t.Fatal("resource wildcard must not leak across resources")
	}

	global := NewSet("*")
	if !global.Allowed(PagesDelete) || !global.Allowed(NavigationUpdate) {
		t.Fatal("global wildcard must grant everything")
	}
}

func TestJoin(t *testing.T) {
	if got := Join(ResourcePages, ActionDelete); got != PagesDelete {
		t.Fatalf("join = %q, want %q", got, PagesDelete)
	}
	if got := Join("", ActionRead); got != "" {
		t.Fatalf("join with empty resource = %q, want empty", got)
	}
}
