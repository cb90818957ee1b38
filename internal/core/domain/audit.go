package domain

import "time"

// AuditAction names a security-relevant event recorded in the audit trail.
type AuditAction string

const (
	AuditUserRegistered         AuditAction = "user_registered"
	AuditLoginSucceeded         AuditAction = "login_succeeded"
	AuditLoginFailed            AuditAction = "login_failed"
	AuditTokenIssued            AuditAction = "token_issued"
	AuditTokenExpired           AuditAction = "token_expired"
	AuditEntryCreated           AuditAction = "entry_created"
	AuditEntryDeleted           AuditAction = "entry_deleted"
	AuditEntryVisibilityChanged AuditAction = "entry_visibility_changed"
)

// AuditEvent is one row of the audit trail.
type AuditEvent struct {
	Action     AuditAction
	Username   string
	EntryID    int64  // zero when not entry related
	Detail     string // free-form, never contains secrets
	OccurredAt time.Time
}
