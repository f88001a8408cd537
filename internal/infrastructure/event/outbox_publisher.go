package event

import (
	"context"

	"github.com/erp/posting/internal/domain/shared"
	"gorm.io/gorm"
)

// OutboxPublisher turns pending aggregate events into outbox rows on the
// caller's transaction, so a rollback discards them with the postings.
type OutboxPublisher struct {
	serializer *EventSerializer
}

func NewOutboxPublisher(serializer *EventSerializer) *OutboxPublisher {
	return &OutboxPublisher{serializer: serializer}
}

func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]*shared.OutboxEntry, len(events))
	for i, e := range events {
		payload, err := p.serializer.Serialize(e)
		if err != nil {
			return err
		}
		rows[i] = shared.NewOutboxEntry(e, payload)
	}
	return NewGormOutboxRepository(tx).Save(ctx, rows...)
}

// Writer returns a shared.OutboxEventWriter bound to tx.
func (p *OutboxPublisher) Writer(tx *gorm.DB) shared.OutboxEventWriter {
	return writerFunc(func(ctx context.Context, events ...shared.DomainEvent) error {
		return p.PublishWithTx(ctx, tx, events...)
	})
}

type writerFunc func(ctx context.Context, events ...shared.DomainEvent) error

func (f writerFunc) Write(ctx context.Context, events ...shared.DomainEvent) error {
	return f(ctx, events...)
}
