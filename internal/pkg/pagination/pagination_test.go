package pagination

import (
	"testing"

	"github.com/meridian-institute/core/internal/pkg/apperr"
)

func TestLimit(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"6", 6, false},
		{"50", 50, false},
		{"0", 0, true},
		{"51", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := Limit(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Limit(%q) expected error", tc.raw)
				}
				if !apperr.IsKind(err, apperr.KindValidation) {
					t.Fatalf("Limit(%q) error kind = %v, want validation", tc.raw, apperr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Limit(%q) unexpected error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Limit(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}
