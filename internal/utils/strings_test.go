package utils

import (
	"strings"
	"testing"
)

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := NewInviteCode()
		if len(code) != InviteCodeLength {
			t.Fatalf("expected %d chars, got %q", InviteCodeLength, code)
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code should be uppercase, got %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes should vary between calls")
	}
}

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Maria  ", "Maria"},
		{"\tJoão\n", "João"},
		{"   ", ""},
		{"Ana", "Ana"},
	}
	for _, tt := range tests {
		if got := NormalizeString(tt.in); got != tt.want {
			t.Errorf("NormalizeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
