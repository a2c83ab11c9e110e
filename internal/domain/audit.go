package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one append-only entry in the audit log. Written by the core
// on every state transition; read only by admin tooling.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	EntityType *EntityType
	EntityID   *uuid.UUID
	UserID     *uuid.UUID
	Limit      int
	Offset     int
}
