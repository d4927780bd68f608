package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/meridian-institute/core/internal/pkg/apperr"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name      string
		q         string
		kind      string
		page      string
		limit     string
		wantField string
	}{
		{"valid all kinds", "climate", "", "1", "10", ""},
		{"valid single kind", "climate", "policy", "2", "25", ""},
		{"empty q", "", "", "1", "10", "q"},
		{"q too long", strings.Repeat("a", 101), "", "1", "10", "q"},
		{"q at boundary", strings.Repeat("a", 100), "", "1", "10", ""},
		{"multibyte q counted in runes", strings.Repeat("気", 100), "", "1", "10", ""},
		{"multibyte q over boundary", strings.Repeat("気", 101), "", "1", "10", "q"},
		{"unknown kind", "climate", "report", "1", "10", "kind"},
		{"page zero", "climate", "", "0", "10", "page"},
		{"page not numeric", "climate", "", "two", "10", "page"},
		{"limit zero", "climate", "", "1", "0", "limit"},
		{"limit over ceiling", "climate", "", "1", "51", "limit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuery(tc.q, tc.kind, tc.page, tc.limit)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Q != tc.q {
					t.Fatalf("q = %q, want %q", got.Q, tc.q)
				}
				return
			}
			var e *apperr.Error
			if !errors.As(err, &e) || e.Kind != apperr.KindValidation {
				t.Fatalf("error = %v, want validation", err)
			}
			if _, ok := e.Fields[tc.wantField]; !ok {
				t.Fatalf("field detail missing %q: %v", tc.wantField, e.Fields)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindPublication, KindPolicy, KindCaseStudy, KindEvent} {
		if !k.Valid() {
			t.Fatalf("%q should be valid", k)
		}
	}
	if Kind("page").Valid() {
		t.Fatal("unknown kind should be invalid")
	}
}
