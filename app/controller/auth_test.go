package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-trading/app/controller"
	"github.com/vibast-solutions/ms-go-trading/app/repository"
	"github.com/vibast-solutions/ms-go-trading/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	findByAccountQuery = `(?s)SELECT id, account, email, password_hash, created_at, updated_at\s+FROM users WHERE account = \?`
	findByEmailQuery   = `(?s)SELECT id, account, email, password_hash, created_at, updated_at\s+FROM users WHERE email = \?`
	findByLoginQuery   = `(?s)SELECT id, account, email, password_hash, created_at, updated_at\s+FROM users WHERE account = \? OR email = \?`
	findByIDQuery      = `(?s)SELECT id, account, email, password_hash, created_at, updated_at\s+FROM users WHERE id = \?`
	insertUserQuery    = `(?s)INSERT INTO users \(account, email, password_hash, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?\)`
	updatePasswordQry  = `(?s)UPDATE users SET\s+password_hash = \?,\s+updated_at = \?\s+WHERE id = \?`
)

var userColumns = []string{
	"id",
	"account",
	"email",
	"password_hash",
	"created_at",
	"updated_at",
}

type stubMailer struct {
	link string
	err  error
}

func (m *stubMailer) SendPasswordReset(_, resetLink string) error {
	m.link = resetLink
	return m.err
}

func newAuthControllerWithMock(t *testing.T) (*controller.AuthController, *service.ResetTokens, *stubMailer, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	tokens := service.NewResetTokens("test-secret", 30*time.Minute)
	mailer := &stubMailer{}
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokens, mailer, "https://trading.example.com")

	return controller.NewAuthController(authService), tokens, mailer, mock, func() { _ = db.Close() }
}

func newJSONRequest(t *testing.T, method, path string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestRegister_Success(t *testing.T) {
	authController, _, _, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByAccountQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(insertUserQuery).
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/register", map[string]string{
		"account":  "alice",
		"password": "password123",
		"email":    "alice@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if body["account"] != "alice" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected response body: %v", body)
	}
	if _, hasHash := body["password_hash"]; hasHash {
		t.Fatalf("password hash must never be returned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegister_DuplicateAccount(t *testing.T) {
	authController, _, _, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findByAccountQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			uint64(1),
			"alice",
			"alice@example.com",
			"hash",
			now,
			now,
		))

	req, rec := newJSONRequest(t, http.MethodPost, "/register", map[string]string{
		"account":  "alice",
		"password": "password123",
		"email":    "other@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	authController, _, _, _, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{bad-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	authController, _, _, _, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/register", map[string]string{
		"account": "alice",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	authController, _, _, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	now := time.Now()

	mock.ExpectQuery(findByLoginQuery).
		WithArgs("alice@example.com", "alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			uint64(1),
			"alice",
			"alice@example.com",
			string(hashed),
			now,
			now,
		))

	req, rec := newJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"login":    "alice@example.com",
		"password": "password",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Login(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if body["account"] != "alice" {
		t.Fatalf("unexpected response body: %v", body)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogin_InvalidCredentials_SameShape(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	now := time.Now()

	// Unknown identifier and wrong password must produce identical error
	// bodies so the caller cannot tell which field failed.
	var bodies []string

	for _, tc := range []struct {
		name  string
		login string
		rows  *sqlmock.Rows
	}{
		{
			name:  "unknown identifier",
			login: "nobody",
			rows:  sqlmock.NewRows(userColumns),
		},
		{
			name:  "wrong password",
			login: "alice",
			rows: sqlmock.NewRows(userColumns).AddRow(
				uint64(1),
				"alice",
				"alice@example.com",
				string(hashed),
				now,
				now,
			),
		},
	} {
		authController, _, _, mock, cleanup := newAuthControllerWithMock(t)

		mock.ExpectQuery(findByLoginQuery).
			WithArgs(tc.login, tc.login).
			WillReturnRows(tc.rows)

		req, rec := newJSONRequest(t, http.MethodPost, "/login", map[string]string{
			"login":    tc.login,
			"password": "wrong",
		})
		e := echo.New()
		ctx := e.NewContext(req, rec)

		if err := authController.Login(ctx); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status 401, got %d", tc.name, rec.Code)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("%s: unmet expectations: %v", tc.name, err)
		}
		bodies = append(bodies, rec.Body.String())
		cleanup()
	}

	if bodies[0] != bodies[1] {
		t.Fatalf("expected identical error shapes, got %q and %q", bodies[0], bodies[1])
	}
}

func TestForgotPassword_Success(t *testing.T) {
	authController, _, mailer, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findByEmailQuery).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			uint64(1),
			"alice",
			"alice@example.com",
			"hash",
			now,
			now,
		))

	req, rec := newJSONRequest(t, http.MethodPost, "/forgot-password", map[string]string{
		"email": "alice@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ForgotPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if mailer.link == "" {
		t.Fatalf("expected reset link to be mailed")
	}
	// The acknowledgement must not leak the token or link.
	if strings.Contains(rec.Body.String(), mailer.link) {
		t.Fatalf("response must not contain the reset link")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	authController, _, _, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByEmailQuery).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	req, rec := newJSONRequest(t, http.MethodPost, "/forgot-password", map[string]string{
		"email": "missing@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ForgotPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForgotPassword_MailFailure(t *testing.T) {
	authController, _, mailer, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	mailer.err = echo.ErrBadGateway
	now := time.Now()
	mock.ExpectQuery(findByEmailQuery).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			uint64(1),
			"alice",
			"alice@example.com",
			"hash",
			now,
			now,
		))

	req, rec := newJSONRequest(t, http.MethodPost, "/forgot-password", map[string]string{
		"email": "alice@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ForgotPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetPassword_Success(t *testing.T) {
	authController, tokens, _, mock, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	token, err := tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	now := time.Now()
	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			uint64(1),
			"alice",
			"alice@example.com",
			"old-hash",
			now,
			now,
		))
	mock.ExpectExec(updatePasswordQry).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/reset-password", map[string]string{
		"token":        token,
		"new_password": "new-password",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ResetPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetPassword_InvalidToken(t *testing.T) {
	authController, _, _, _, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/reset-password", map[string]string{
		"token":        "garbage",
		"new_password": "new-password",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ResetPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestResetPassword_MissingFields(t *testing.T) {
	authController, _, _, _, cleanup := newAuthControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/reset-password", map[string]string{
		"token": "",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ResetPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
