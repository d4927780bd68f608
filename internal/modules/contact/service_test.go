package contact

import (
	"errors"
	"testing"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
)

func TestSubmitDTOValidate(t *testing.T) {
	valid := SubmitDTO{
		Name:        "Jordan Lee",
		Email:       "jordan@example.org",
		Subject:     "Research collaboration",
		Message:     "We would like to discuss a joint research project.",
		InquiryType: models.InquiryResearch,
	}

	cases := []struct {
		name      string
		mutate    func(*SubmitDTO)
		wantField string
	}{
		{"valid", func(*SubmitDTO) {}, ""},
		{"empty name", func(d *SubmitDTO) { d.Name = "  " }, "name"},
		{"empty email", func(d *SubmitDTO) { d.Email = "" }, "email"},
		{"malformed email", func(d *SubmitDTO) { d.Email = "not-an-address" }, "email"},
		{"empty subject", func(d *SubmitDTO) { d.Subject = "" }, "subject"},
		{"short message", func(d *SubmitDTO) { d.Message = "too short" }, "message"},
		{"unknown inquiry type", func(d *SubmitDTO) { d.InquiryType = "sales" }, "inquiry_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dto := valid
			tc.mutate(&dto)

			err := dto.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			var e *apperr.Error
			if !errors.As(err, &e) || e.Kind != apperr.KindValidation {
				t.Fatalf("error kind = %v, want validation", apperr.KindOf(err))
			}
			if _, ok := e.Fields[tc.wantField]; !ok {
				t.Fatalf("field detail missing %q: %v", tc.wantField, e.Fields)
			}
		})
	}
}

func TestSubmitDTOValidateCollectsAllFields(t *testing.T) {
	dto := SubmitDTO{Message: "hi"}
	err := dto.Validate()
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	for _, field := range []string{"name", "email", "subject", "message", "inquiry_type"} {
		if _, ok := e.Fields[field]; !ok {
			t.Fatalf("expected field %q in detail, got %v", field, e.Fields)
		}
	}
}
