package services

import (
	"strings"
	"testing"
)

func TestGenerateAPISecret(t *testing.T) {
	a, err := GenerateAPISecret(32)
	if err != nil {
		t.Fatalf("GenerateAPISecret: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("len = %d, want 32", len(a))
	}
	for _, r := range a {
		if !strings.ContainsRune(secretChars, r) {
			t.Errorf("unexpected char %q", r)
		}
	}
	b, _ := GenerateAPISecret(32)
	if a == b {
		t.Error("two secrets should differ")
	}
	if _, err := GenerateAPISecret(MinSecretLen - 1); err == nil {
		t.Error("expected error for short secret")
	}
}
