package services

import (
	"errors"
	"testing"
	"time"
)

func TestTokenStore_IssueAndResolve(t *testing.T) {
	store := NewTokenStore(10, time.Minute)

	token, err := store.Issue("/srv/files/jane.pdf")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(token) != 22 {
		t.Errorf("token length = %d, want 22", len(token))
	}

	path, err := store.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if path != "/srv/files/jane.pdf" {
		t.Errorf("Resolve() = %q", path)
	}
}

func TestTokenStore_TokensAreUnique(t *testing.T) {
	store := NewTokenStore(100, time.Minute)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := store.Issue("same.pdf")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestTokenStore_UnknownToken(t *testing.T) {
	store := NewTokenStore(10, time.Minute)

	for _, token := range []string{"", "not-a-token"} {
		if _, err := store.Resolve(token); !errors.Is(err, ErrAccess) {
			t.Errorf("Resolve(%q) error = %v, want ErrAccess", token, err)
		}
	}
}

func TestTokenStore_Expires(t *testing.T) {
	store := NewTokenStore(10, 20*time.Millisecond)

	token, err := store.Issue("a.pdf")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := store.Resolve(token); !errors.Is(err, ErrAccess) {
		t.Errorf("Resolve() after ttl error = %v, want ErrAccess", err)
	}
}

func TestTokenStore_Bounded(t *testing.T) {
	store := NewTokenStore(3, time.Minute)

	first, _ := store.Issue("0.pdf")
	for i := 0; i < 5; i++ {
		if _, err := store.Issue("n.pdf"); err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
	}

	if n := store.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
	if _, err := store.Resolve(first); !errors.Is(err, ErrAccess) {
		t.Errorf("oldest token still resolves, err = %v", err)
	}
}
