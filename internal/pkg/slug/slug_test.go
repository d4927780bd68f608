package slug

import "testing"

func TestDerive(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Tax Policy Review", "tax-policy-review"},
		{"punctuation collapses", "Fiscal Outlook: 2026 & Beyond!", "fiscal-outlook-2026-beyond"},
		{"leading and trailing noise", "  --Hello World--  ", "hello-world"},
		{"non-ascii dropped", "Café Économique", "caf-conomique"},
		{"empty falls back", "???", "untitled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Derive(tc.title); got != tc.want {
				t.Fatalf("Derive(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("tax-policy-review", 1); got != "tax-policy-review" {
		t.Fatalf("attempt 1 should be bare, got %q", got)
	}
	if got := WithSuffix("tax-policy-review", 2); got != "tax-policy-review-2" {
		t.Fatalf("attempt 2 = %q, want tax-policy-review-2", got)
	}
	if got := WithSuffix("tax-policy-review", 3); got != "tax-policy-review-3" {
		t.Fatalf("attempt 3 = %q, want tax-policy-review-3", got)
	}
}

func TestUniqueProbesDeterministically(t *testing.T) {
	taken := map[string]bool{
		"tax-policy-review":   true,
		"tax-policy-review-2": true,
	}
	var probes []string
	exists := func(candidate string) (bool, error) {
		probes = append(probes, candidate)
		return taken[candidate], nil
	}

	got, err := Unique("Tax Policy Review", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "tax-policy-review-3" {
		t.Fatalf("Unique = %q, want tax-policy-review-3", got)
	}
	want := []string{"tax-policy-review", "tax-policy-review-2", "tax-policy-review-3"}
	if len(probes) != len(want) {
		t.Fatalf("probe count = %d, want %d", len(probes), len(want))
	}
	for i := range want {
		if probes[i] != want[i] {
			t.Fatalf("probe %d = %q, want %q", i, probes[i], want[i])
		}
	}
}

func TestUniqueFirstAttemptFree(t *testing.T) {
	got, err := Unique("Fresh Title", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fresh-title" {
		t.Fatalf("Unique = %q, want fresh-title", got)
	}
}
