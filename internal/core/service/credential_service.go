package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/metrics"
)

// CredentialService implements registration and password verification.
type CredentialService struct {
	repos ports.Repositories
	cost  int
	audit ports.AuditLog
	log   zerolog.Logger

	// dummyHash is compared against when the username is unknown so that
	// both branches of Verify cost one bcrypt comparison.
	dummyHash []byte
}

func NewCredentialService(repos ports.Repositories, cost int, audit ports.AuditLog, log zerolog.Logger) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	s := &CredentialService{repos: repos, cost: cost, audit: auditOrNop(audit), log: log}

	secret := make([]byte, 16)
	_, _ = rand.Read(secret)
	s.dummyHash, _ = bcrypt.GenerateFromPassword(secret, cost)
	return s
}

// Register validates the age, hashes the password with a fresh salt and
// inserts the user. Presence of the fields is checked at the HTTP boundary;
// empty strings are accepted. Duplicate usernames surface as
// domain.ErrUserExists.
func (s *CredentialService) Register(ctx context.Context, conn dbx.DBTX, in ports.RegisterInput) error {
	age, err := domain.ParseAge(in.Age)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Fullname:     in.Fullname,
		Age:          age,
	}
	if err := s.repos.Users(conn).Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return err
		}
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditUserRegistered, Username: user.Username})
	return nil
}

// Verify reports whether password matches the stored hash for username.
// An unknown username yields false, indistinguishable from a wrong password.
func (s *CredentialService) Verify(ctx context.Context, conn dbx.DBTX, username, password string) (bool, error) {
	user, err := s.repos.Users(conn).FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return false, fmt.Errorf("verify: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.loginResult(ctx, username, false)
		return false, nil
	}

	ok := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	s.loginResult(ctx, username, ok)
	return ok, nil
}

func (s *CredentialService) loginResult(ctx context.Context, username string, ok bool) {
	if !ok {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.log.Info().Str("username", username).Msg("authentication failed")
		record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditLoginFailed, Username: username})
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditLoginSucceeded, Username: username})
}

// Profile returns the public part of a user's record.
func (s *CredentialService) Profile(ctx context.Context, conn dbx.DBTX, username string) (*domain.User, error) {
	user, err := s.repos.Users(conn).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}
