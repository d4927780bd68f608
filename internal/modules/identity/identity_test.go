package identity

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/meridian-institute/core/internal/modules/authz"
	jwtpkg "github.com/meridian-institute/core/internal/pkg/jwt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-provider-secret"

func init() {
	jwtpkg.SetSecret(testSecret)
}

func signToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":   subject,
		"name":  "Jordan Lee",
		"email": "jordan@example.org",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return db, mock
}

func TestResolveFailsClosedWithoutToken(t *testing.T) {
	svc := NewService(nil, nil)
	if got := svc.Resolve(""); got != authz.Anonymous {
		t.Fatalf("Resolve(\"\") = %+v, want Anonymous", got)
	}
}

func TestResolveFailsClosedOnGarbageToken(t *testing.T) {
	svc := NewService(nil, nil)
	if got := svc.Resolve("not.a.token"); got != authz.Anonymous {
		t.Fatalf("garbage token resolved to %+v, want Anonymous", got)
	}
}

func TestResolveFailsClosedOnWrongSignature(t *testing.T) {
	svc := NewService(nil, nil)
	token := signToken(t, "user-1", "some-other-secret")
	if got := svc.Resolve(token); got != authz.Anonymous {
		t.Fatalf("forged token resolved to %+v, want Anonymous", got)
	}
}

func TestResolveFailsClosedOnLookupError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, nil)

	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnError(fmt.Errorf("connection reset"))

	token := signToken(t, "user-1", testSecret)
	if got := svc.Resolve(token); got != authz.Anonymous {
		t.Fatalf("lookup failure resolved to %+v, want Anonymous", got)
	}
}

func TestResolveMemberAndAdminRoles(t *testing.T) {
	cases := []struct {
		name         string
		isTeamMember bool
		wantRole     authz.Role
	}{
		{"plain member", false, authz.RoleMember},
		{"team member is admin", true, authz.RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewService(db, nil)

			now := time.Now()
			mock.ExpectQuery("SELECT \\* FROM `profiles`").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "is_team_member", "last_login_time"}).
					AddRow("user-1", "Jordan Lee", "jordan@example.org", tc.isTeamMember, now))

			got := svc.Resolve(signToken(t, "user-1", testSecret))
			if got.Role != tc.wantRole {
				t.Fatalf("role = %v, want %v", got.Role, tc.wantRole)
			}
			if got.ProfileID != "user-1" {
				t.Fatalf("profile id = %q, want user-1", got.ProfileID)
			}
		})
	}
}

func TestResolveSeedsBootstrapAdminOnFirstLogin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, []string{"founder-1"})

	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `profiles`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	got := svc.Resolve(signToken(t, "founder-1", testSecret))
	if got.Role != authz.RoleAdmin {
		t.Fatalf("bootstrap subject role = %v, want admin", got.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveCreatesPlainProfileOnFirstLogin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, []string{"founder-1"})

	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `profiles`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	got := svc.Resolve(signToken(t, "user-2", testSecret))
	if got.Role != authz.RoleMember {
		t.Fatalf("first-login role = %v, want member", got.Role)
	}
}
