// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

const maxBaseLength = 80

// Derive converts a title into a lowercase, hyphen-separated slug.
// Non-alphanumeric runes collapse into single hyphens.
func Derive(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > maxBaseLength {
		s = strings.Trim(s[:maxBaseLength], "-")
	}
	if s == "" {
		s = "untitled"
	}
	return s
}

// WithSuffix appends the numeric collision suffix for attempt n.
// Attempt 1 is the bare slug; attempt 2 yields "<slug>-2" and so on.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// Unique resolves a collision-free slug by probing with exists until a
// free candidate is found. The suffix policy is deterministic: bare
// slug first, then -2, -3, ...
func Unique(title string, exists func(candidate string) (bool, error)) (string, error) {
	base := Derive(title)
	for n := 1; ; n++ {
		candidate := WithSuffix(base, n)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
