// Package event writes domain events to the transactional outbox.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
)

// EventSerializer encodes events as JSON outbox payloads and decodes them
// back by event type name.
type EventSerializer struct {
	factories map[string]func() shared.DomainEvent
}

func NewEventSerializer() *EventSerializer {
	return &EventSerializer{factories: map[string]func() shared.DomainEvent{
		accounting.EventTypeVoucherPosted:       func() shared.DomainEvent { return new(accounting.VoucherPostedEvent) },
		accounting.EventTypeVoucherCancelled:    func() shared.DomainEvent { return new(accounting.VoucherCancelledEvent) },
		accounting.EventTypeSystemLedgerCreated: func() shared.DomainEvent { return new(accounting.SystemLedgerCreatedEvent) },
	}}
}

func (s *EventSerializer) Serialize(e shared.DomainEvent) ([]byte, error) {
	if _, known := s.factories[e.EventType()]; !known {
		return nil, fmt.Errorf("unknown event type: %s", e.EventType())
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.EventType(), err)
	}
	return payload, nil
}

func (s *EventSerializer) Deserialize(eventType string, payload []byte) (shared.DomainEvent, error) {
	factory, known := s.factories[eventType]
	if !known {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
	e := factory()
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", eventType, err)
	}
	return e, nil
}
