// Package authz is the visibility/authorization filter: it decides
// which records a caller may see, which fields they may mutate, and
// which lifecycle transitions are legal. All decisions are pure
// functions over the caller identity and record state.
package authz

import (
	"strings"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
)

// Role is the caller class resolved from the session credential.
type Role int

const (
	RoleAnonymous Role = iota
	RoleMember
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the resolved caller. ProfileID is empty for Anonymous.
type Identity struct {
	Role      Role
	ProfileID string
}

// Anonymous is the fail-closed identity.
var Anonymous = Identity{Role: RoleAnonymous}

func (i Identity) IsAdmin() bool  { return i.Role == RoleAdmin }
func (i Identity) IsMember() bool { return i.Role == RoleMember || i.Role == RoleAdmin }

// Owns reports whether the identity is the record's author.
func (i Identity) Owns(authorID string) bool {
	return i.ProfileID != "" && i.ProfileID == authorID
}

// CanView reports whether the caller may read a record in the given
// status. Published records are public; everything else is restricted
// to the owner and admins. Callers that fail this check must be told
// the record does not exist, never that it is forbidden.
func CanView(id Identity, authorID string, status models.ContentStatus) bool {
	if status == models.StatusPublished {
		return true
	}
	return id.IsAdmin() || id.Owns(authorID)
}

// CanEditContent checks a content-field mutation (title, body, ...).
// The owner may edit only while the record is a draft; once submitted
// for review, only an admin may touch it.
func CanEditContent(id Identity, authorID string, status models.ContentStatus) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Owns(authorID) {
		if status == models.StatusDraft {
			return nil
		}
		return apperr.Authorization("content is locked once submitted for review")
	}
	if !CanView(id, authorID, status) {
		return apperr.NotFound("record")
	}
	return apperr.Authorization("only the author may edit this record")
}

// Transition validates a lifecycle move. The machine:
//
//	draft          → pending_review  (owner submits)
//	pending_review → published       (admin approves)
//	pending_review → rejected        (admin rejects, with reason)
//	rejected       → draft           (owner revises)
//
// Nothing skips pending_review; direct admin authoring is handled at
// create time, not here.
func Transition(id Identity, authorID string, from, to models.ContentStatus) error {
	if !from.Valid() || !to.Valid() {
		return apperr.Validation("unknown status", map[string]string{"status": "must be one of draft, pending_review, published, rejected"})
	}
	if from == to {
		return apperr.Conflict("record is already " + string(to))
	}

	switch {
	case from == models.StatusDraft && to == models.StatusPendingReview:
		if id.IsAdmin() || id.Owns(authorID) {
			return nil
		}
	case from == models.StatusPendingReview && to == models.StatusPublished:
		if id.IsAdmin() {
			return nil
		}
	case from == models.StatusPendingReview && to == models.StatusRejected:
		if id.IsAdmin() {
			return nil
		}
	case from == models.StatusRejected && to == models.StatusDraft:
		if id.IsAdmin() || id.Owns(authorID) {
			return nil
		}
	}

	if !CanView(id, authorID, from) {
		return apperr.NotFound("record")
	}
	return apperr.Authorization("transition " + string(from) + " → " + string(to) + " is not permitted")
}

// ValidateSubmission enforces the submit-for-review precondition:
// non-empty title and content.
func ValidateSubmission(title, content string) error {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "must not be empty"
	}
	if strings.TrimSpace(content) == "" {
		fields["content"] = "must not be empty"
	}
	if len(fields) > 0 {
		return apperr.Validation("cannot submit for review", fields)
	}
	return nil
}

// CreateStatus resolves the initial status for a new record. Members
// always start in draft; admins may author directly into draft or
// published.
func CreateStatus(id Identity, requested models.ContentStatus) (models.ContentStatus, error) {
	if requested == "" {
		return models.StatusDraft, nil
	}
	if !requested.Valid() {
		return "", apperr.Validation("unknown status", map[string]string{"status": string(requested)})
	}
	if id.IsAdmin() {
		if requested == models.StatusDraft || requested == models.StatusPublished {
			return requested, nil
		}
		return "", apperr.Validation("new records may only start as draft or published", nil)
	}
	if requested != models.StatusDraft {
		return "", apperr.Authorization("members create records as drafts")
	}
	return models.StatusDraft, nil
}
