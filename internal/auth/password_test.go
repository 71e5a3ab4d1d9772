package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("password1", 0)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if digest == "password1" {
		t.Fatal("digest must not equal plaintext")
	}

	if !VerifyPassword("password1", digest) {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword("password2", digest) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("password1", 0)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("password1", 0)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("expected fresh salt per call")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	if VerifyPassword("password1", "not-a-bcrypt-digest") {
		t.Fatal("expected malformed digest to fail verification")
	}
	if VerifyPassword("password1", "") {
		t.Fatal("expected empty digest to fail verification")
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	digest, err := HashPassword("password1", 0)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	// bcrypt digests embed the cost factor after the version prefix.
	if !strings.HasPrefix(digest, "$2a$10$") {
		t.Fatalf("expected cost 10 digest, got prefix %q", digest[:7])
	}
}
