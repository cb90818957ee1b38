package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/api/middleware"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// fakeConn stands in for the checked-out connection; stubs never use it.
type fakeConn struct{ dbx.DBTX }

type stubCredentials struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) error
	verifyFn   func(ctx context.Context, username, password string) (bool, error)
	profileFn  func(ctx context.Context, username string) (*domain.User, error)
}

func (s *stubCredentials) Register(ctx context.Context, _ dbx.DBTX, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubCredentials) Verify(ctx context.Context, _ dbx.DBTX, username, password string) (bool, error) {
	return s.verifyFn(ctx, username, password)
}

func (s *stubCredentials) Profile(ctx context.Context, _ dbx.DBTX, username string) (*domain.User, error) {
	return s.profileFn(ctx, username)
}

type stubLedger struct {
	issueFn func(ctx context.Context, username string) (*domain.Token, error)
}

func (s *stubLedger) Issue(ctx context.Context, _ dbx.DBTX, username string) (*domain.Token, error) {
	return s.issueFn(ctx, username)
}

func (s *stubLedger) Resolve(context.Context, dbx.DBTX, string) (string, error) {
	panic("not used by handlers")
}

func (s *stubLedger) Expire(context.Context, dbx.DBTX, string) error {
	panic("not used by handlers")
}

// stubGate authenticates the token "good" as alice unless authFn is set.
// ValidateVisibility uses the real parser unless visibilityFn is set.
type stubGate struct {
	authFn       func(token string) (string, error)
	expireFn     func(token string) error
	ownsFn       func(username string, id int64) error
	visibilityFn func(raw json.RawMessage) (bool, error)
	calls        []string
}

func (s *stubGate) Authenticate(_ context.Context, _ dbx.DBTX, token string) (string, error) {
	s.calls = append(s.calls, "authenticate")
	if s.authFn != nil {
		return s.authFn(token)
	}
	if token == "good" {
		return "alice", nil
	}
	return "", domain.ErrUnauthorized
}

func (s *stubGate) ExpireToken(_ context.Context, _ dbx.DBTX, token string) error {
	s.calls = append(s.calls, "expire")
	return s.expireFn(token)
}

func (s *stubGate) AuthorizeOwnsEntry(_ context.Context, _ dbx.DBTX, username string, id int64) error {
	s.calls = append(s.calls, "owns")
	if s.ownsFn != nil {
		return s.ownsFn(username, id)
	}
	return nil
}

func (s *stubGate) ValidateVisibility(raw json.RawMessage) (bool, error) {
	s.calls = append(s.calls, "visibility")
	if s.visibilityFn != nil {
		return s.visibilityFn(raw)
	}
	return domain.ParseVisibility(raw)
}

type stubDiary struct {
	listPublicFn   func() ([]domain.DiaryEntry, error)
	listByAuthorFn func(username string) ([]domain.DiaryEntry, error)
	createFn       func(in ports.CreateEntryInput) (*domain.DiaryEntry, error)
	visibilityFn   func(id int64, author string, public bool) error
	deleteFn       func(id int64, author string) error
}

func (s *stubDiary) ListPublic(context.Context, dbx.DBTX) ([]domain.DiaryEntry, error) {
	return s.listPublicFn()
}

func (s *stubDiary) ListByAuthor(_ context.Context, _ dbx.DBTX, username string) ([]domain.DiaryEntry, error) {
	return s.listByAuthorFn(username)
}

func (s *stubDiary) Create(_ context.Context, _ dbx.DBTX, in ports.CreateEntryInput) (*domain.DiaryEntry, error) {
	return s.createFn(in)
}

func (s *stubDiary) SetVisibility(_ context.Context, _ dbx.DBTX, id int64, author string, public bool) error {
	return s.visibilityFn(id, author, public)
}

func (s *stubDiary) Delete(_ context.Context, _ dbx.DBTX, id int64, author string) error {
	return s.deleteFn(id, author)
}

// newJSONContext builds a context for a JSON request with a connection
// already attached, as the DBConn middleware would leave it.
func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ConnKey, dbx.DBTX(fakeConn{}))
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d (%s)", want, rec.Code, rec.Body.String())
	}
}
