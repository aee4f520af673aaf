package domain

import "time"

// AuditEvent records a mutation for the audit trail. Events are written
// asynchronously; losing one is logged but never fails the request that
// produced it.
type AuditEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Audit entity types and actions.
const (
	AuditEntityJob         = "job"
	AuditEntityApplication = "application"

	AuditActionCreated       = "created"
	AuditActionDeleted       = "deleted"
	AuditActionStatusChanged = "status_changed"
)
