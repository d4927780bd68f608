package app

import "testing"

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"meridian.org", "*.meridian.org", "localhost:*"}

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"exact host", "https://meridian.org", true},
		{"scheme ignored", "http://meridian.org", true},
		{"subdomain wildcard", "https://research.meridian.org", true},
		{"port wildcard", "http://localhost:3000", true},
		{"unrelated host", "https://evil.example.com", false},
		{"suffix lookalike", "https://notmeridian.org", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := originAllowed(patterns, tc.origin); got != tc.want {
				t.Fatalf("originAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
			}
		})
	}
}
