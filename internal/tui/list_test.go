package tui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this one is too long", 10, "this one …"},
		{"", 5, ""},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestTruncateMultibyteTitles(t *testing.T) {
	// Page titles are routinely non-ASCII; a cut must never land inside
	// a rune.
	titles := []string{
		"Süddeutsche Zeitung – Aktuelle Nachrichten",
		"日本語のページタイトルです",
		"Ångström — Wikipédia",
	}
	for _, title := range titles {
		for max := 1; max < len([]rune(title))+2; max++ {
			got := truncate(title, max)
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) = %q is not valid UTF-8", title, max, got)
			}
			if strings.ContainsRune(got, utf8.RuneError) {
				t.Fatalf("truncate(%q, %d) produced a replacement character", title, max)
			}
			if n := len([]rune(got)); n > max {
				t.Fatalf("truncate(%q, %d) kept %d runes", title, max, n)
			}
		}
	}
}
