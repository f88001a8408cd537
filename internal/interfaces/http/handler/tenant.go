package handler

import (
	"context"
	"time"

	apptenant "github.com/erp/posting/internal/application/tenant"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantService provisions tenants and reads their profile
type TenantService interface {
	Provision(ctx context.Context, tenantID uuid.UUID, req apptenant.ProvisionRequest) (*apptenant.ProvisionResponse, error)
	GetProfile(ctx context.Context, tenantID uuid.UUID) (*accounting.TenantProfile, error)
}

// TenantProfileResponse is the stored business profile of a tenant
type TenantProfileResponse struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	BusinessType  string    `json:"business_type"`
	ProvisionedAt time.Time `json:"provisioned_at"`
}

// TenantHandler handles tenant provisioning endpoints
type TenantHandler struct {
	BaseHandler
	service TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// Provision godoc
//
//	@ID				provisionTenant
//	@Summary		Provision the tenant's chart of accounts
//	@Description	Seeds the account groups for the business type and every system ledger.
//	@Description	Repeating the call only fills in what is missing.
//	@Tags			tenant
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string						true	"Tenant ID"
//	@Param			request		body		apptenant.ProvisionRequest	false	"Business type"
//	@Success		200			{object}	dto.Response{data=apptenant.ProvisionResponse}
//	@Failure		400			{object}	dto.Response
//	@Router			/tenant/provision [post]
func (h *TenantHandler) Provision(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req apptenant.ProvisionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	resp, err := h.service.Provision(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Profile godoc
//
//	@ID				getTenantProfile
//	@Summary		Get the tenant's business profile
//	@Tags			tenant
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Success		200			{object}	dto.Response{data=TenantProfileResponse}
//	@Failure		404			{object}	dto.Response
//	@Router			/tenant/profile [get]
func (h *TenantHandler) Profile(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, TenantProfileResponse{
		TenantID:      profile.TenantID,
		BusinessType:  string(profile.BusinessType),
		ProvisionedAt: profile.ProvisionedAt,
	})
}
