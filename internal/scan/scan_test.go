package scan

import (
	"bytes"
	"testing"
)

func TestIndexByte(t *testing.T) {
	haystack := []byte("hello world")

	tests := []struct {
		at   int
		c    byte
		want int
	}{
		{0, 'h', 0},
		{0, 'o', 4},
		{5, 'o', 7},
		{0, 'z', -1},
		{11, 'h', -1}, // at == len
		{20, 'h', -1}, // past the end
	}
	for _, tt := range tests {
		if got := IndexByte(haystack, tt.at, tt.c); got != tt.want {
			t.Errorf("IndexByte(%d, %q) = %d, want %d", tt.at, tt.c, got, tt.want)
		}
	}
}

func TestIndexTable(t *testing.T) {
	var digits Table
	for c := '0'; c <= '9'; c++ {
		digits[c] = true
	}

	tests := []struct {
		haystack string
		at       int
		want     int
	}{
		{"abc123", 0, 3},
		{"abc123", 4, 4},
		{"abc123", 6, -1},
		{"no digits at all", 0, -1},
		{"", 0, -1},
		{"7", 0, 0},
	}
	for _, tt := range tests {
		if got := IndexTable([]byte(tt.haystack), tt.at, &digits); got != tt.want {
			t.Errorf("IndexTable(%q, %d) = %d, want %d", tt.haystack, tt.at, got, tt.want)
		}
	}
}

// TestIndexTable_ChunkAgreement checks the chunked and scalar scans agree on
// every offset of a long input, including the non-multiple-of-8 tail.
func TestIndexTable_ChunkAgreement(t *testing.T) {
	var vowels Table
	for _, c := range []byte("aeiou") {
		vowels[c] = true
	}

	haystack := bytes.Repeat([]byte("xyz"), 11)
	haystack = append(haystack, 'e')
	haystack = append(haystack, bytes.Repeat([]byte("qrs"), 5)...)
	haystack = append(haystack, 'o')

	for at := 0; at <= len(haystack); at++ {
		want := -1
		for i := at; i < len(haystack); i++ {
			if vowels[haystack[i]] {
				want = i
				break
			}
		}
		if got := indexTableChunked(haystack, at, &vowels); got != want {
			t.Errorf("chunked(%d) = %d, want %d", at, got, want)
		}
		if got := IndexTable(haystack, at, &vowels); got != want {
			t.Errorf("IndexTable(%d) = %d, want %d", at, got, want)
		}
	}
}
