package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "pw123" {
		t.Fatalf("password stored in the clear")
	}
	if !VerifyPassword("pw123", hash) {
		t.Fatalf("valid password did not verify")
	}
	if VerifyPassword("pw124", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHashPassword_LongPasswordTruncation(t *testing.T) {
	// 100 ASCII bytes: truncation keeps the first 72, verify applies the
	// same cut so the original still verifies.
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !VerifyPassword(long, hash) {
		t.Fatalf("long password did not verify against its own hash")
	}
}

func TestHashPassword_MultiByteBoundary(t *testing.T) {
	// Each é is 2 bytes, so 50 of them is 100 bytes and byte 72 falls in
	// the middle of a rune. Hash and verify must agree on the cut.
	pw := strings.Repeat("é", 50)
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !VerifyPassword(pw, hash) {
		t.Fatalf("multi-byte password did not verify against its own hash")
	}
}

func TestTruncatePassword_NeverSplitsRune(t *testing.T) {
	cases := []string{
		strings.Repeat("é", 50),          // 2-byte runes
		strings.Repeat("€", 40),          // 3-byte runes
		strings.Repeat("🙂", 30),          // 4-byte runes
		strings.Repeat("a", 71) + "é" + strings.Repeat("b", 10), // rune straddles the limit
	}
	for _, pw := range cases {
		got := truncatePassword(pw)
		if len(got) > maxPasswordBytes {
			t.Fatalf("truncated prefix is %d bytes, want <= %d", len(got), maxPasswordBytes)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncation produced invalid UTF-8 for %q", pw)
		}
		if !strings.HasPrefix(pw, got) {
			t.Fatalf("truncation result is not a prefix of the input")
		}
	}
}

func TestTruncatePassword_ShortInputUnchanged(t *testing.T) {
	if got := truncatePassword("short"); got != "short" {
		t.Fatalf("short password altered: %q", got)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if VerifyPassword("anything", "") {
		t.Fatalf("empty hash verified")
	}
}
