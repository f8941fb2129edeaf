package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitText(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		chunks := SplitText("short", 100, 10)
		if len(chunks) != 1 || chunks[0] != "short" {
			t.Errorf("got %v, want the input unchanged", chunks)
		}
	})

	t.Run("chunks overlap", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 10) // 100 chars
		chunks := SplitText(text, 40, 10)

		if len(chunks) < 3 {
			t.Fatalf("got %d chunks, want at least 3", len(chunks))
		}
		for i := 1; i < len(chunks); i++ {
			prevTail := chunks[i-1][len(chunks[i-1])-10:]
			if !strings.HasPrefix(chunks[i], prevTail) {
				t.Errorf("chunk %d does not overlap the previous tail", i)
			}
		}
	})

	t.Run("multibyte text not cut mid-rune", func(t *testing.T) {
		text := strings.Repeat("héllo wörld ", 30)
		for _, c := range SplitText(text, 50, 5) {
			if !utf8.ValidString(c) {
				t.Fatalf("invalid UTF-8 chunk: %q", c)
			}
		}
	})

	t.Run("overlap larger than chunk still terminates", func(t *testing.T) {
		chunks := SplitText(strings.Repeat("x", 100), 10, 20)
		if len(chunks) == 0 {
			t.Fatal("no chunks produced")
		}
	})
}
