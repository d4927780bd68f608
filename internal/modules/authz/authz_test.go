package authz

import (
	"testing"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
)

var (
	anon   = Anonymous
	owner  = Identity{Role: RoleMember, ProfileID: "member-1"}
	other  = Identity{Role: RoleMember, ProfileID: "member-2"}
	admin  = Identity{Role: RoleAdmin, ProfileID: "admin-1"}
	author = "member-1"
)

func TestCanView(t *testing.T) {
	cases := []struct {
		name   string
		id     Identity
		status models.ContentStatus
		want   bool
	}{
		{"anonymous sees published", anon, models.StatusPublished, true},
		{"anonymous blocked from draft", anon, models.StatusDraft, false},
		{"anonymous blocked from pending", anon, models.StatusPendingReview, false},
		{"owner sees own draft", owner, models.StatusDraft, true},
		{"owner sees own rejected", owner, models.StatusRejected, true},
		{"other member blocked from draft", other, models.StatusDraft, false},
		{"other member blocked from pending", other, models.StatusPendingReview, false},
		{"other member sees published", other, models.StatusPublished, true},
		{"admin sees everything", admin, models.StatusPendingReview, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanView(tc.id, author, tc.status); got != tc.want {
				t.Fatalf("CanView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanEditContent(t *testing.T) {
	if err := CanEditContent(owner, author, models.StatusDraft); err != nil {
		t.Fatalf("owner draft edit: %v", err)
	}
	if err := CanEditContent(admin, author, models.StatusPendingReview); err != nil {
		t.Fatalf("admin edit: %v", err)
	}

	err := CanEditContent(owner, author, models.StatusPendingReview)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("owner edit of pending record: got %v, want authorization error", err)
	}

	// a stranger editing an invisible record must not learn it exists
	err = CanEditContent(other, author, models.StatusDraft)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("stranger edit of draft: got %v, want not-found", err)
	}

	// visible record, still not theirs
	err = CanEditContent(other, author, models.StatusPublished)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("stranger edit of published: got %v, want authorization error", err)
	}
}

func TestTransitionMachine(t *testing.T) {
	cases := []struct {
		name     string
		id       Identity
		from, to models.ContentStatus
		wantKind apperr.Kind
	}{
		{"owner submits draft", owner, models.StatusDraft, models.StatusPendingReview, apperr.KindUnknown},
		{"admin approves", admin, models.StatusPendingReview, models.StatusPublished, apperr.KindUnknown},
		{"admin rejects", admin, models.StatusPendingReview, models.StatusRejected, apperr.KindUnknown},
		{"owner revises rejected", owner, models.StatusRejected, models.StatusDraft, apperr.KindUnknown},

		{"member cannot approve own work", owner, models.StatusPendingReview, models.StatusPublished, apperr.KindAuthorization},
		{"published cannot go back to draft", admin, models.StatusPublished, models.StatusDraft, apperr.KindAuthorization},
		{"owner cannot unpublish", owner, models.StatusPublished, models.StatusDraft, apperr.KindAuthorization},
		{"draft cannot skip review", owner, models.StatusDraft, models.StatusPublished, apperr.KindAuthorization},
		{"stranger submit reads as missing", other, models.StatusDraft, models.StatusPendingReview, apperr.KindNotFound},
		{"anonymous cannot touch published", anon, models.StatusPublished, models.StatusRejected, apperr.KindAuthorization},
		{"no-op transition conflicts", admin, models.StatusPublished, models.StatusPublished, apperr.KindConflict},
		{"unknown status", admin, models.StatusDraft, models.ContentStatus("archived"), apperr.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Transition(tc.id, author, tc.from, tc.to)
			if tc.wantKind == apperr.KindUnknown {
				if err != nil {
					t.Fatalf("expected allowed, got %v", err)
				}
				return
			}
			if !apperr.IsKind(err, tc.wantKind) {
				t.Fatalf("got %v, want kind %v", err, tc.wantKind)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	if err := ValidateSubmission("Tax Policy Review", "full text"); err != nil {
		t.Fatalf("valid submission rejected: %v", err)
	}

	err := ValidateSubmission("  ", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	var e *apperr.Error
	if !asErr(err, &e) {
		t.Fatal("not an apperr")
	}
	if _, ok := e.Fields["title"]; !ok {
		t.Error("missing title field detail")
	}
	if _, ok := e.Fields["content"]; !ok {
		t.Error("missing content field detail")
	}
}

func TestCreateStatus(t *testing.T) {
	if st, err := CreateStatus(owner, ""); err != nil || st != models.StatusDraft {
		t.Fatalf("member default: %v %v", st, err)
	}
	if st, err := CreateStatus(admin, models.StatusPublished); err != nil || st != models.StatusPublished {
		t.Fatalf("admin direct publish: %v %v", st, err)
	}
	if _, err := CreateStatus(owner, models.StatusPublished); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("member direct publish should be denied, got %v", err)
	}
	if _, err := CreateStatus(admin, models.StatusPendingReview); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("admin creating into review should be invalid, got %v", err)
	}
}

func asErr(err error, target **apperr.Error) bool {
	e, ok := err.(*apperr.Error)
	if ok {
		*target = e
	}
	return ok
}
