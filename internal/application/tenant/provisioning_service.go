// Package tenant provisions a tenant's chart of accounts and system ledgers.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProvisionRequest selects the business profile of a new tenant
type ProvisionRequest struct {
	BusinessType string `json:"business_type" binding:"omitempty,oneof=trader manufacturer service"`
}

// ProvisionResponse reports what provisioning wrote. Repeating a provisioning
// writes nothing and returns the stored business type.
type ProvisionResponse struct {
	TenantID       uuid.UUID `json:"tenant_id"`
	BusinessType   string    `json:"business_type"`
	ProvisionedAt  time.Time `json:"provisioned_at"`
	GroupsCreated  int       `json:"groups_created"`
	LedgersCreated []string  `json:"ledgers_created"`
}

// ProvisioningService seeds the default chart for a business type and the
// canonical system ledgers the posting engine resolves by code.
type ProvisioningService struct {
	txScope             appposting.TransactionScope
	defaultBusinessType accounting.BusinessType
	logger              *zap.Logger
	now                 func() time.Time
}

// NewProvisioningService creates a ProvisioningService
func NewProvisioningService(txScope appposting.TransactionScope, defaultBusinessType accounting.BusinessType, zapLogger *zap.Logger) *ProvisioningService {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	if defaultBusinessType == "" {
		defaultBusinessType = accounting.BusinessTrader
	}
	return &ProvisioningService{
		txScope:             txScope,
		defaultBusinessType: defaultBusinessType,
		logger:              zapLogger,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// Provision seeds the tenant. The business type is fixed by the first call;
// later calls only fill in groups or ledgers that are missing.
func (s *ProvisioningService) Provision(ctx context.Context, tenantID uuid.UUID, req ProvisionRequest) (*ProvisionResponse, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	bt := s.defaultBusinessType
	if req.BusinessType != "" {
		parsed, err := accounting.ParseBusinessType(req.BusinessType)
		if err != nil {
			return nil, shared.WrapDomainError(shared.ErrInvalidInput.Code, err.Error(), err)
		}
		bt = parsed
	}

	resp := &ProvisionResponse{TenantID: tenantID, LedgersCreated: []string{}}
	err := s.txScope.Execute(ctx, func(repos appposting.TransactionalRepositories) error {
		profile, err := s.profile(ctx, repos, tenantID, bt)
		if err != nil {
			return err
		}
		resp.BusinessType = string(profile.BusinessType)
		resp.ProvisionedAt = profile.ProvisionedAt

		created, err := s.seedGroups(ctx, repos.AccountGroups(), tenantID, profile.BusinessType)
		if err != nil {
			return err
		}
		resp.GroupsCreated = created

		resolver := appposting.NewSystemLedgerResolver(tenantID, repos.AccountGroups(), repos.Ledgers())
		for _, def := range accounting.CanonicalLedgers() {
			if _, err := resolver.Resolve(ctx, def); err != nil {
				return err
			}
		}
		for _, l := range resolver.Created() {
			resp.LedgersCreated = append(resp.LedgersCreated, l.Code)
		}
		return repos.Outbox().Write(ctx, resolver.Events()...)
	})
	if err != nil {
		return nil, err
	}

	logger.WithLogger(ctx, s.logger).Info("tenant provisioned",
		zap.String("business_type", resp.BusinessType),
		zap.Int("groups_created", resp.GroupsCreated),
		zap.Int("ledgers_created", len(resp.LedgersCreated)),
	)
	return resp, nil
}

// GetProfile returns the stored business profile
func (s *ProvisioningService) GetProfile(ctx context.Context, tenantID uuid.UUID) (*accounting.TenantProfile, error) {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	var profile *accounting.TenantProfile
	err := s.txScope.Execute(ctx, func(repos appposting.TransactionalRepositories) error {
		p, err := repos.TenantProfiles().Find(ctx, tenantID)
		profile = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProvisioningService) profile(ctx context.Context, repos appposting.TransactionalRepositories, tenantID uuid.UUID, bt accounting.BusinessType) (*accounting.TenantProfile, error) {
	existing, err := repos.TenantProfiles().Find(ctx, tenantID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("load tenant profile: %w", err)
	}

	profile := &accounting.TenantProfile{TenantID: tenantID, BusinessType: bt, ProvisionedAt: s.now()}
	created, err := repos.TenantProfiles().CreateIfAbsent(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("store tenant profile: %w", err)
	}
	if !created {
		// a concurrent provisioning stored its profile first
		return repos.TenantProfiles().Find(ctx, tenantID)
	}
	return profile, nil
}

// seedGroups creates the missing groups of the chart. Seeds list parents
// first, so every ParentCode is known by the time a child is written.
func (s *ProvisioningService) seedGroups(ctx context.Context, groups accounting.AccountGroupRepository, tenantID uuid.UUID, bt accounting.BusinessType) (int, error) {
	existing, err := groups.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("load account groups: %w", err)
	}
	ids := make(map[string]uuid.UUID, len(existing))
	for _, g := range existing {
		ids[g.Code] = g.ID
	}

	created := 0
	for _, seed := range accounting.DefaultChart(bt) {
		if _, ok := ids[seed.Code]; ok {
			continue
		}
		var parentID *uuid.UUID
		if seed.ParentCode != "" {
			pid, ok := ids[seed.ParentCode]
			if !ok {
				return created, shared.NewDomainError(accounting.CodeChartInconsistent, "parent group "+seed.ParentCode+" of "+seed.Code+" is missing")
			}
			parentID = &pid
		}

		group := accounting.NewAccountGroup(tenantID, seed.Code, seed.Name, seed.Nature, parentID, seed.Category)
		inserted, err := groups.CreateIfAbsent(ctx, group)
		if err != nil {
			return created, fmt.Errorf("create account group %s: %w", seed.Code, err)
		}
		if !inserted {
			winner, err := groups.FindByCode(ctx, tenantID, seed.Code)
			if err != nil {
				return created, fmt.Errorf("reload account group %s: %w", seed.Code, err)
			}
			ids[seed.Code] = winner.ID
			continue
		}
		ids[seed.Code] = group.ID
		created++
	}
	return created, nil
}
