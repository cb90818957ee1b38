package ports

import (
	"context"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// UserRepository persists credentials.
type UserRepository interface {
	// Create inserts a user. A username collision reported by the storage
	// uniqueness constraint is returned as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenRepository persists the token ledger.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	// FindActive returns the username bound to an unexpired token, or
	// domain.ErrTokenNotFoundOrExpired.
	FindActive(ctx context.Context, token string) (string, error)
	// Expire flips expired to true for an unexpired token. Zero affected rows
	// is reported as domain.ErrTokenNotFoundOrExpired.
	Expire(ctx context.Context, token string) error
}

// EntryRepository persists diary entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.DiaryEntry) (int64, error)
	// FindByID returns domain.ErrNotFoundOrForbidden when no entry has that id.
	FindByID(ctx context.Context, id int64) (*domain.DiaryEntry, error)
	ListPublic(ctx context.Context) ([]domain.DiaryEntry, error)
	ListByAuthor(ctx context.Context, author string) ([]domain.DiaryEntry, error)
	// SetVisibility and Delete filter on (id, author); zero affected rows is
	// reported as domain.ErrNotFoundOrForbidden.
	SetVisibility(ctx context.Context, id int64, author string, public bool) error
	Delete(ctx context.Context, id int64, author string) error
}

// Repositories vends repositories bound to a caller-supplied connection, so
// every statement of a request runs on that request's connection.
type Repositories interface {
	Users(db dbx.DBTX) UserRepository
	Tokens(db dbx.DBTX) TokenRepository
	Entries(db dbx.DBTX) EntryRepository
}
