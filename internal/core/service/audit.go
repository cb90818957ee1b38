package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
)

type nopAudit struct{}

func (nopAudit) Record(context.Context, domain.AuditEvent) error { return nil }

func auditOrNop(a ports.AuditLog) ports.AuditLog {
	if a == nil {
		return nopAudit{}
	}
	return a
}

// record writes to the audit trail; failures are logged and swallowed.
func record(ctx context.Context, audit ports.AuditLog, log zerolog.Logger, event domain.AuditEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := audit.Record(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("action", string(event.Action)).
			Str("username", event.Username).
			Msg("failed to record audit event")
	}
}
