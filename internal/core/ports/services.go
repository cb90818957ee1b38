package ports

import (
	"context"
	"encoding/json"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// RegisterInput is the DTO passed from the transport layer to CredentialService.
type RegisterInput struct {
	Username string
	Password string
	Fullname string
	Age      string // raw textual form, parsed by the service
}

// CreateEntryInput carries a new diary entry. Author is the resolved identity.
type CreateEntryInput struct {
	Author string
	Title  string
	Public bool
	Text   string
}

// CredentialService registers and verifies users.
type CredentialService interface {
	Register(ctx context.Context, conn dbx.DBTX, in RegisterInput) error
	Verify(ctx context.Context, conn dbx.DBTX, username, password string) (bool, error)
	Profile(ctx context.Context, conn dbx.DBTX, username string) (*domain.User, error)
}

// TokenLedger issues, resolves and expires bearer tokens.
type TokenLedger interface {
	Issue(ctx context.Context, conn dbx.DBTX, username string) (*domain.Token, error)
	Resolve(ctx context.Context, conn dbx.DBTX, token string) (string, error)
	Expire(ctx context.Context, conn dbx.DBTX, token string) error
}

// Gate binds a request to an acting identity and enforces ownership.
type Gate interface {
	Authenticate(ctx context.Context, conn dbx.DBTX, token string) (string, error)
	ExpireToken(ctx context.Context, conn dbx.DBTX, token string) error
	AuthorizeOwnsEntry(ctx context.Context, conn dbx.DBTX, username string, id int64) error
	ValidateVisibility(raw json.RawMessage) (bool, error)
}

// DiaryService reads and mutates diary entries.
type DiaryService interface {
	ListPublic(ctx context.Context, conn dbx.DBTX) ([]domain.DiaryEntry, error)
	ListByAuthor(ctx context.Context, conn dbx.DBTX, username string) ([]domain.DiaryEntry, error)
	Create(ctx context.Context, conn dbx.DBTX, in CreateEntryInput) (*domain.DiaryEntry, error)
	SetVisibility(ctx context.Context, conn dbx.DBTX, id int64, author string, public bool) error
	Delete(ctx context.Context, conn dbx.DBTX, id int64, author string) error
}
