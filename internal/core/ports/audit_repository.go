package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink is what services use to emit audit events. The implementation
// enqueues onto a worker pool; Emit never blocks the request path beyond
// channel capacity and never returns an error.
type AuditSink interface {
	Emit(event domain.AuditEvent)
}
