package ports

import (
	"context"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

// AuditLog records security-relevant events. Implementations may be slow or
// unavailable; callers treat failures as non-fatal.
type AuditLog interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
