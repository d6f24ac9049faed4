package utils

import (
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hi", 10, "hi"},
		{"exactly max", "abc", 3, "abc"},
		{"clipped", "abcdef", 3, "abc"},
		{"multibyte clipped", "héllo", 3, "hél"},
		{"zero disables", "abcdef", 0, "abcdef"},
		{"negative disables", "abcdef", -5, "abcdef"},
		{"empty input", "", 3, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.in, tc.max); got != tc.want {
				t.Fatalf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateRunes_LongUserAgent(t *testing.T) {
	ua := strings.Repeat("x", 500)
	got := TruncateRunes(ua, 200)
	if len(got) != 200 {
		t.Fatalf("expected 200 chars, got %d", len(got))
	}
}
