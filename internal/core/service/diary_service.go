package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/metrics"
)

type DiaryService struct {
	repos ports.Repositories
	cache ports.FeedCache // nil disables caching
	audit ports.AuditLog
	log   zerolog.Logger
	now   func() time.Time

	// set when a write could not advance the generation; the cache is
	// bypassed until a Bump succeeds again
	degraded atomic.Bool
}

func NewDiaryService(repos ports.Repositories, cache ports.FeedCache, audit ports.AuditLog, log zerolog.Logger) *DiaryService {
	return &DiaryService{repos: repos, cache: cache, audit: auditOrNop(audit), log: log, now: time.Now}
}

// ListPublic returns every public entry in storage order. When a feed cache
// is configured the snapshot for the current generation is served if present.
// After a failed generation bump the cache is skipped until a bump succeeds.
func (s *DiaryService) ListPublic(ctx context.Context, conn dbx.DBTX) ([]domain.DiaryEntry, error) {
	if s.cache == nil {
		return s.loadPublic(ctx, conn)
	}
	if s.degraded.Load() {
		if err := s.cache.Bump(ctx); err != nil {
			metrics.FeedCacheTotal.WithLabelValues("bypass").Inc()
			return s.loadPublic(ctx, conn)
		}
		s.degraded.Store(false)
		s.log.Info().Msg("feed cache generation advanced, cache re-enabled")
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		metrics.FeedCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("feed cache unavailable, reading from storage")
		return s.loadPublic(ctx, conn)
	}

	entries, ok, err := s.cache.Get(ctx, gen)
	switch {
	case err != nil:
		metrics.FeedCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Int64("generation", gen).Msg("feed cache read failed")
	case ok:
		metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
		return entries, nil
	default:
		metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
	}

	entries, err = s.loadPublic(ctx, conn)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, gen, entries); err != nil {
		s.log.Warn().Err(err).Int64("generation", gen).Msg("feed cache write failed")
	}
	return entries, nil
}

func (s *DiaryService) loadPublic(ctx context.Context, conn dbx.DBTX) ([]domain.DiaryEntry, error) {
	entries, err := s.repos.Entries(conn).ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public entries: %w", err)
	}
	return entries, nil
}

// ListByAuthor returns all entries, public and private, written by username.
func (s *DiaryService) ListByAuthor(ctx context.Context, conn dbx.DBTX, username string) ([]domain.DiaryEntry, error) {
	entries, err := s.repos.Entries(conn).ListByAuthor(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list entries of %s: %w", username, err)
	}
	return entries, nil
}

// Create stores a new entry stamped with the current time at second precision.
func (s *DiaryService) Create(ctx context.Context, conn dbx.DBTX, in ports.CreateEntryInput) (*domain.DiaryEntry, error) {
	entry := &domain.DiaryEntry{
		Title:     in.Title,
		Author:    in.Author,
		CreatedAt: domain.EntryTimestamp(s.now()),
		Public:    in.Public,
		Text:      in.Text,
	}

	id, err := s.repos.Entries(conn).Create(ctx, entry)
	if err != nil {
		s.log.Error().Err(err).Str("author", in.Author).Msg("failed to create diary entry")
		return nil, fmt.Errorf("create entry: %w", err)
	}
	entry.ID = id
	s.invalidateFeed(ctx)

	metrics.EntriesCreatedTotal.WithLabelValues(entry.Visibility()).Inc()
	s.log.Info().Int64("id", id).Str("author", entry.Author).Bool("public", entry.Public).Msg("diary entry created")
	record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditEntryCreated, Username: entry.Author, EntryID: id, Detail: entry.Visibility()})
	return entry, nil
}

// SetVisibility changes the public flag of an entry owned by author. The
// update itself filters on (id, author), independently of the Gate.
func (s *DiaryService) SetVisibility(ctx context.Context, conn dbx.DBTX, id int64, author string, public bool) error {
	if err := s.repos.Entries(conn).SetVisibility(ctx, id, author, public); err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			return err
		}
		return fmt.Errorf("set visibility of entry %d: %w", id, err)
	}
	s.invalidateFeed(ctx)

	s.log.Info().Int64("id", id).Str("author", author).Bool("public", public).Msg("diary entry visibility changed")
	detail := "private"
	if public {
		detail = "public"
	}
	record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditEntryVisibilityChanged, Username: author, EntryID: id, Detail: detail})
	return nil
}

// Delete removes at most one entry, filtered by (id, author).
func (s *DiaryService) Delete(ctx context.Context, conn dbx.DBTX, id int64, author string) error {
	if err := s.repos.Entries(conn).Delete(ctx, id, author); err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			return err
		}
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	s.invalidateFeed(ctx)

	metrics.EntriesDeletedTotal.Inc()
	s.log.Info().Int64("id", id).Str("author", author).Msg("diary entry deleted")
	record(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditEntryDeleted, Username: author, EntryID: id})
	return nil
}

// invalidateFeed runs after a successful write. If the generation cannot be
// advanced, the pre-write snapshot is dropped and this instance stops reading
// the cache, since a concurrent reader may still Put a snapshot it loaded
// before the write.
func (s *DiaryService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	err := s.cache.Bump(ctx)
	if err == nil {
		s.degraded.Store(false)
		return
	}

	s.degraded.Store(true)
	s.log.Warn().Err(err).Msg("failed to bump feed cache generation, bypassing cache")

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read feed cache generation")
		return
	}
	if err := s.cache.Drop(ctx, gen); err != nil {
		s.log.Warn().Err(err).Int64("generation", gen).Msg("failed to drop stale feed snapshot")
	}
}
