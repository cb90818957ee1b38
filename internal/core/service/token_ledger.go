package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/metrics"
)

// TokenLedger issues, resolves and expires opaque bearer tokens.
//
// Token lifecycle: active -> expired. Expire is the only transition and
// expired is terminal; rows are kept for history and never purged.
type TokenLedger struct {
	repos ports.Repositories
	audit ports.AuditLog
	log   zerolog.Logger

	newToken func() (uuid.UUID, error)
}

func NewTokenLedger(repos ports.Repositories, audit ports.AuditLog, log zerolog.Logger) *TokenLedger {
	return &TokenLedger{repos: repos, audit: auditOrNop(audit), log: log, newToken: uuid.NewRandom}
}

// Issue mints a fresh version-4 token for username. Earlier tokens of the
// same user stay valid.
func (l *TokenLedger) Issue(ctx context.Context, conn dbx.DBTX, username string) (*domain.Token, error) {
	id, err := l.newToken()
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	token := &domain.Token{Username: username, Value: id.String()}
	if err := l.repos.Tokens(conn).Create(ctx, token); err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.TokensIssuedTotal.Inc()
	l.log.Info().Str("username", username).Str("token", domain.TokenPrefix(token.Value)).Msg("token issued")
	record(ctx, l.audit, l.log, domain.AuditEvent{Action: domain.AuditTokenIssued, Username: username})
	return token, nil
}

// Resolve returns the username bound to an active token. Malformed tokens
// fail with domain.ErrInvalidTokenFormat without touching storage; unknown
// and expired tokens both fail with domain.ErrTokenNotFoundOrExpired.
func (l *TokenLedger) Resolve(ctx context.Context, conn dbx.DBTX, token string) (string, error) {
	if !domain.IsTokenFormat(token) {
		return "", domain.ErrInvalidTokenFormat
	}

	username, err := l.repos.Tokens(conn).FindActive(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFoundOrExpired) {
			l.log.Debug().Str("token", domain.TokenPrefix(token)).Msg("invalid or expired token")
			return "", err
		}
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return username, nil
}

// Expire moves an active token to expired. A second call for the same token
// fails with domain.ErrTokenNotFoundOrExpired.
func (l *TokenLedger) Expire(ctx context.Context, conn dbx.DBTX, token string) error {
	if !domain.IsTokenFormat(token) {
		return domain.ErrInvalidTokenFormat
	}

	if err := l.repos.Tokens(conn).Expire(ctx, token); err != nil {
		if errors.Is(err, domain.ErrTokenNotFoundOrExpired) {
			return err
		}
		return fmt.Errorf("expire token: %w", err)
	}

	metrics.TokensExpiredTotal.Inc()
	l.log.Info().Str("token", domain.TokenPrefix(token)).Msg("token expired")
	record(ctx, l.audit, l.log, domain.AuditEvent{Action: domain.AuditTokenExpired, Detail: domain.TokenPrefix(token)})
	return nil
}
