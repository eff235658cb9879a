package storage

import "testing"

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair("bob@example.com", "alice@example.com")
	if a != "alice@example.com" || b != "bob@example.com" {
		t.Fatalf("expected sorted pair, got %q, %q", a, b)
	}

	a2, b2 := NormalizePair("alice@example.com", "bob@example.com")
	if a2 != a || b2 != b {
		t.Fatalf("expected both orderings to normalize identically, got %q, %q", a2, b2)
	}
}

func TestSessionHasPlayer(t *testing.T) {
	s := &Session{P1: "alice@example.com", P2: "bob@example.com"}
	if !s.HasPlayer("alice@example.com") || !s.HasPlayer("bob@example.com") {
		t.Fatalf("expected both players to be members")
	}
	if s.HasPlayer("carol@example.com") {
		t.Fatalf("expected carol to be rejected")
	}
}

func TestSessionOpponent(t *testing.T) {
	s := &Session{P1: "alice@example.com", P2: "bob@example.com"}
	if s.Opponent("alice@example.com") != "bob@example.com" {
		t.Fatalf("expected bob as alice's opponent")
	}
	if s.Opponent("bob@example.com") != "alice@example.com" {
		t.Fatalf("expected alice as bob's opponent")
	}
}
