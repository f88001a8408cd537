package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is anything the posting engine writes to the outbox.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
}

// AggregateRef names the aggregate an event belongs to.
type AggregateRef struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

// EventHeader is embedded by every concrete event and satisfies DomainEvent.
type EventHeader struct {
	ID        uuid.UUID    `json:"event_id"`
	Name      string       `json:"event_type"`
	At        time.Time    `json:"occurred_at"`
	Aggregate AggregateRef `json:"aggregate"`
	Tenant    uuid.UUID    `json:"tenant_id"`
}

func NewEventHeader(name string, aggregate AggregateRef, tenantID uuid.UUID) EventHeader {
	return EventHeader{ID: uuid.New(), Name: name, At: Now(), Aggregate: aggregate, Tenant: tenantID}
}

func (h *EventHeader) EventID() uuid.UUID     { return h.ID }
func (h *EventHeader) EventType() string      { return h.Name }
func (h *EventHeader) OccurredAt() time.Time  { return h.At }
func (h *EventHeader) AggregateID() uuid.UUID { return h.Aggregate.ID }
func (h *EventHeader) AggregateType() string  { return h.Aggregate.Type }
func (h *EventHeader) TenantID() uuid.UUID    { return h.Tenant }
