package main

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 60, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title that gets cut", 10, "a longe..."},
		{"ab", 2, "ab"},
		{"abcdef", 3, "abc"},
		{"", 10, ""},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"single line", "single line"},
		{"first\nsecond\nthird", "first"},
		{"\nleading newline", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstLine(tt.input); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
