package accounting

import (
	"time"

	"github.com/google/uuid"
)

// TenantProfile records the business type chosen when the tenant was
// provisioned. It is resolved once and read thereafter.
type TenantProfile struct {
	TenantID      uuid.UUID
	BusinessType  BusinessType
	ProvisionedAt time.Time
}
