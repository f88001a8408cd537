package shared

import "github.com/google/uuid"

// TenantAggregateRoot is the header of a tenant-owned aggregate. Version
// drives the optimistic check on save; events raised by state transitions
// wait here until the repository writes them to the outbox.
type TenantAggregateRoot struct {
	BaseEntity
	TenantID uuid.UUID
	Version  int
	pending  []DomainEvent
}

func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{BaseEntity: NewBaseEntity(), TenantID: tenantID, Version: 1}
}

// IncrementVersion is called after a successful conditional update.
func (a *TenantAggregateRoot) IncrementVersion() { a.Version++ }

func (a *TenantAggregateRoot) Raise(e DomainEvent) { a.pending = append(a.pending, e) }

func (a *TenantAggregateRoot) PendingEvents() []DomainEvent { return a.pending }

func (a *TenantAggregateRoot) ClearPendingEvents() { a.pending = nil }
