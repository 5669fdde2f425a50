package custompages

import (
	"errors"
	"testing"
)

func TestNormalizePageKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"events", "events"},
		{"  Events  ", "events"},
		{"Our Events", "our-events"},
	}
	for _, tc := range cases {
		got, err := NormalizePageKey(tc.in)
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalize %q = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := NormalizePageKey("   "); !errors.Is(err, ErrPageKeyRequired) {
		t.Fatalf("blank key: got %v, want ErrPageKeyRequired", err)
	}
}

func TestKeyPolicyValidate(t *testing.T) {
	policy := DefaultKeyPolicy()

	for _, key := range []string{"events", "our-events", "team"} {
		if err := policy.Validate(key); err != nil {
			t.Fatalf("validate %q: %v", key, err)
		}
	}

	for _, key := range []string{"home", "admin", "logout", "login", "search"} {
		if err := policy.Validate(key); !errors.Is(err, ErrPageKeyReserved) {
			t.Fatalf("validate %q: got %v, want ErrPageKeyReserved", key, err)
		}
	}

	for _, key := range []string{"api-docs", "auth-callback", "admin-tools", "static-site"} {
		if err := policy.Validate(key); !errors.Is(err, ErrPageKeyReserved) {
			t.Fatalf("validate prefix %q: got %v, want ErrPageKeyReserved", key, err)
		}
	}
}
