package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// Gate resolves the acting identity of a request and enforces entry
// ownership. It owns no storage.
type Gate struct {
	ledger ports.TokenLedger
	repos  ports.Repositories
}

func NewGate(ledger ports.TokenLedger, repos ports.Repositories) *Gate {
	return &Gate{ledger: ledger, repos: repos}
}

// Authenticate maps a token to its username. Every token problem collapses
// into domain.ErrUnauthorized; storage failures pass through.
func (g *Gate) Authenticate(ctx context.Context, conn dbx.DBTX, token string) (string, error) {
	username, err := g.ledger.Resolve(ctx, conn, token)
	if err != nil {
		return "", unauthorized(err)
	}
	return username, nil
}

// ExpireToken expires token with the same error collapsing as Authenticate.
func (g *Gate) ExpireToken(ctx context.Context, conn dbx.DBTX, token string) error {
	return unauthorized(g.ledger.Expire(ctx, conn, token))
}

// AuthorizeOwnsEntry succeeds only when entry id exists and is authored by
// username. Both failure reasons are reported as domain.ErrNotFoundOrForbidden.
func (g *Gate) AuthorizeOwnsEntry(ctx context.Context, conn dbx.DBTX, username string, id int64) error {
	entry, err := g.repos.Entries(conn).FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.Author != username {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}

// ValidateVisibility accepts only a JSON boolean.
func (g *Gate) ValidateVisibility(raw json.RawMessage) (bool, error) {
	return domain.ParseVisibility(raw)
}

func unauthorized(err error) error {
	if errors.Is(err, domain.ErrInvalidTokenFormat) || errors.Is(err, domain.ErrTokenNotFoundOrExpired) {
		return domain.ErrUnauthorized
	}
	return err
}
