package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("trusted-secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "trusted-secret" {
		t.Fatal("hash equals the plain password")
	}
	if err := h.Compare(hash, "trusted-secret"); err != nil {
		t.Fatalf("Compare rejected the correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong-secret"); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCostFallback(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"zero falls back", 0, defaultCost},
		{"negative falls back", -1, defaultCost},
		{"above max falls back", bcrypt.MaxCost + 1, defaultCost},
		{"min kept", bcrypt.MinCost, bcrypt.MinCost},
		{"default kept", defaultCost, defaultCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBcryptHasher(tt.cost).cost; got != tt.want {
				t.Fatalf("cost = %d, want %d", got, tt.want)
			}
		})
	}
}
