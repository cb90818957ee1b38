package ports

import (
	"context"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

// FeedCache caches snapshots of the public feed keyed by a generation number.
//
// Readers call Generation, then Get with that generation; on a miss they load
// from storage and Put under the generation they read. Writers call Bump after
// their statement succeeded, so snapshots taken before a write are never
// served after it. When Bump fails the writer calls Drop for the generation
// it still sees, so no replica keeps serving the pre-write snapshot.
type FeedCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64) ([]domain.DiaryEntry, bool, error)
	Put(ctx context.Context, generation int64, entries []domain.DiaryEntry) error
	Bump(ctx context.Context) error
	Drop(ctx context.Context, generation int64) error
}
