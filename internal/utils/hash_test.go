package utils

import "testing"

func TestHashString_Deterministic(t *testing.T) {
	a := HashString("token", "key")
	b := HashString("token", "key")

	if a != b {
		t.Errorf("expected equal digests, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashString_KeyAndInputMatter(t *testing.T) {
	base := HashString("token", "key")

	if base == HashString("token", "other-key") {
		t.Error("expected different digest for different key")
	}
	if base == HashString("token2", "key") {
		t.Error("expected different digest for different input")
	}
}
