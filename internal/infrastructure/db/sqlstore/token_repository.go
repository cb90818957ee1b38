package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

type TokenRepository struct {
	db dbx.DBTX
}

func NewTokenRepository(db dbx.DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query :=
		`INSERT INTO tokens (token, username, expired)
		 VALUES ($1, $2, FALSE)`

	if _, err := r.db.ExecContext(ctx, query, token.Value, token.Username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	token.Expired = false
	return nil
}

func (r *TokenRepository) FindActive(ctx context.Context, token string) (string, error) {
	query :=
		`SELECT username FROM tokens
		 WHERE token = $1 AND expired = FALSE`

	var username string
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrTokenNotFoundOrExpired
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return username, nil
}

// Expire is a single conditional update; of two concurrent calls for the
// same token exactly one affects a row.
func (r *TokenRepository) Expire(ctx context.Context, token string) error {
	query :=
		`UPDATE tokens SET expired = TRUE
		 WHERE token = $1 AND expired = FALSE`

	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, domain.ErrTokenNotFoundOrExpired)
}

func requireAffected(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return none
	}
	return nil
}
