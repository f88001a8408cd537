package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of an outbox row. This service only
// writes PENDING; the relay that ships rows moves them on.
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
	OutboxStatusFailed  OutboxStatus = "FAILED"
)

// OutboxEntry is one encoded DomainEvent, committed in the transaction
// that produced it.
type OutboxEntry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOutboxEntry copies the routing fields of e next to its payload.
func NewOutboxEntry(e DomainEvent, payload []byte) *OutboxEntry {
	at := Now()
	return &OutboxEntry{
		ID:            uuid.New(),
		TenantID:      e.TenantID(),
		EventID:       e.EventID(),
		EventType:     e.EventType(),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

type OutboxRepository interface {
	Save(ctx context.Context, entries ...*OutboxEntry) error
	CountPending(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// OutboxEventWriter appends events to the outbox of an open transaction.
type OutboxEventWriter interface {
	Write(ctx context.Context, events ...DomainEvent) error
}
