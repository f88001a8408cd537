package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock used for audit timestamps. Tests may replace it.
var Now = func() time.Time { return time.Now().UTC() }

// BaseEntity is the identity and audit pair shared by groups, ledgers and vouchers.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	at := Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: at, UpdatedAt: at}
}

// Touch records a modification.
func (e *BaseEntity) Touch() { e.UpdatedAt = Now() }
