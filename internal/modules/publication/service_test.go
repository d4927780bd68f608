package publication

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/modules/authz"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return NewService(db), mock
}

func countRow(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestCreateDerivesSuffixedSlug(t *testing.T) {
	svc, mock := newTestService(t)

	// "tax-policy-review" is taken, the first free candidate is "-2"
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `publications`").
		WithArgs("tax-policy-review").
		WillReturnRows(countRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `publications`").
		WithArgs("tax-policy-review-2").
		WillReturnRows(countRow(0))
	mock.ExpectExec("INSERT INTO `publications`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	member := authz.Identity{Role: authz.RoleMember, ProfileID: "u1"}
	pub, err := svc.Create(member, &CreatePublicationDTO{
		Title:   "Tax Policy Review",
		Content: "Overview of the proposed reforms.",
		Type:    models.PublicationPolicyBrief,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.Slug != "tax-policy-review-2" {
		t.Fatalf("slug = %q, want tax-policy-review-2", pub.Slug)
	}
	if pub.Status != models.StatusDraft {
		t.Fatalf("status = %q, want draft", pub.Status)
	}
	if pub.PublishedAt != nil {
		t.Fatal("draft must not carry a publish timestamp")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMemberCannotPublishDirectly(t *testing.T) {
	svc, _ := newTestService(t)

	member := authz.Identity{Role: authz.RoleMember, ProfileID: "u1"}
	_, err := svc.Create(member, &CreatePublicationDTO{
		Title:   "Direct to Published",
		Content: "body",
		Type:    models.PublicationOpinion,
		Status:  models.StatusPublished,
	})
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("error = %v, want authorization", err)
	}
}

func publicationRow(id, authorID string, status models.ContentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug", "content", "status", "author_id", "type"}).
		AddRow(id, "Tax Policy Review", "tax-policy-review", "Overview of the proposed reforms.", string(status), authorID, "policy_brief")
}

func expectLoad(mock sqlmock.Sqlmock, id, authorID string, status models.ContentStatus) {
	mock.ExpectQuery("SELECT \\* FROM `publications`").
		WillReturnRows(publicationRow(id, authorID, status))
	// Author preload; Category and Tag are skipped for NULL keys
	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Jordan Lee"))
}

func TestUpdateStatusLoserGetsConflict(t *testing.T) {
	svc, mock := newTestService(t)

	expectLoad(mock, "p1", "u1", models.StatusPendingReview)
	// a concurrent reviewer already moved the record: CAS matches no row
	mock.ExpectExec("UPDATE `publications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	admin := authz.Identity{Role: authz.RoleAdmin, ProfileID: "rev"}
	_, err := svc.UpdateStatus(admin, "p1", models.StatusPublished, "")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusPublishWinner(t *testing.T) {
	svc, mock := newTestService(t)

	expectLoad(mock, "p1", "u1", models.StatusPendingReview)
	mock.ExpectExec("UPDATE `publications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// reload after the swap
	expectLoad(mock, "p1", "u1", models.StatusPublished)

	admin := authz.Identity{Role: authz.RoleAdmin, ProfileID: "rev"}
	pub, err := svc.UpdateStatus(admin, "p1", models.StatusPublished, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.Status != models.StatusPublished {
		t.Fatalf("status = %q, want published", pub.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDInvisibleReadsAsMissing(t *testing.T) {
	svc, mock := newTestService(t)

	expectLoad(mock, "p1", "owner", models.StatusDraft)

	stranger := authz.Identity{Role: authz.RoleMember, ProfileID: "someone-else"}
	_, err := svc.GetByID(stranger, "p1")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestListPublicPagesAreStable(t *testing.T) {
	svc, mock := newTestService(t)

	// two identical list calls must issue the same ORDER BY with the id
	// tie-breaker, so rows sharing published_at cannot swap positions or
	// straddle a page boundary between calls
	const orderedSelect = "SELECT \\* FROM `publications` .*ORDER BY publications\\.published_at DESC, publications\\.id DESC"
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `publications`").
			WillReturnRows(countRow(2))
		mock.ExpectQuery(orderedSelect).
			WillReturnRows(publicationRow("p1", "u1", models.StatusPublished))
	}

	for i := 0; i < 2; i++ {
		pubs, _, err := svc.List(authz.Anonymous, pagination.Query{Page: 1, Size: 10}, ListQuery{})
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if len(pubs) != 1 || pubs[0].ID != "p1" {
			t.Fatalf("call %d: unexpected page %+v", i+1, pubs)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusSubmitRequiresContent(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `publications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "content", "status", "author_id", "type"}).
			AddRow("p1", "Untitled Draft", "untitled-draft", "", "draft", "u1", "opinion"))
	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))

	owner := authz.Identity{Role: authz.RoleMember, ProfileID: "u1"}
	_, err := svc.UpdateStatus(owner, "p1", models.StatusPendingReview, "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}
