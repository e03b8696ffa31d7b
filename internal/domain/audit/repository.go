package audit

import "context"

// AuditRepository is append-only; entries are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry Entry) (Entry, error)
	ListByTarget(ctx context.Context, targetType TargetType, targetID string) ([]Entry, error)
}
