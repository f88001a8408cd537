package handler

import (
	"context"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
)

// LedgerService is the part of the posting service the ledger endpoints use
type LedgerService interface {
	CreateLedger(ctx context.Context, tenantID uuid.UUID, req appposting.CreateLedgerRequest) (*appposting.LedgerResponse, error)
	GetLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*appposting.LedgerResponse, error)
	ListLedgers(ctx context.Context, tenantID uuid.UUID, filter appposting.LedgerListFilter) ([]appposting.LedgerResponse, int64, error)
	RefreshLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (*appposting.LedgerResponse, error)
}

// LedgerHandler handles ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	service LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(service LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// Create godoc
//
//	@ID				createLedger
//	@Summary		Create a ledger
//	@Description	Creates a user-maintained ledger (customer, supplier, bank) under an account group
//	@Tags			ledgers
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string							true	"Tenant ID"
//	@Param			request		body		appposting.CreateLedgerRequest	true	"Ledger"
//	@Success		201			{object}	dto.Response{data=appposting.LedgerResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Router			/ledgers [post]
func (h *LedgerHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appposting.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ledger, err := h.service.CreateLedger(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ledger)
}

// Get godoc
//
//	@ID				getLedger
//	@Summary		Get a ledger and its stored balance
//	@Tags			ledgers
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Ledger ID"
//	@Success		200			{object}	dto.Response{data=appposting.LedgerResponse}
//	@Failure		404			{object}	dto.Response
//	@Router			/ledgers/{id} [get]
func (h *LedgerHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.pathID(c, "ledger")
	if !ok {
		return
	}

	ledger, err := h.service.GetLedger(c.Request.Context(), tenantID, ledgerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// List godoc
//
//	@ID				listLedgers
//	@Summary		List ledgers
//	@Tags			ledgers
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			group_id	query		string	false	"Account group ID"
//	@Param			system_only	query		bool	false	"Only system ledgers"
//	@Param			page		query		int		false	"Page"		default(1)
//	@Param			page_size	query		int		false	"Page size"	default(50)	maximum(500)
//	@Param			order_by	query		string	false	"code, name or created_at"
//	@Param			order_dir	query		string	false	"asc or desc"
//	@Success		200			{object}	dto.Response{data=[]appposting.LedgerResponse}
//	@Router			/ledgers [get]
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter appposting.LedgerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = defaultPage
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultPageSize
	}

	ledgers, total, err := h.service.ListLedgers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, ledgers, total, filter.Page, filter.PageSize)
}

// Refresh godoc
//
//	@ID				refreshLedger
//	@Summary		Recompute a ledger balance
//	@Description	Recomputes the stored balance from the opening balance and every entry
//	@Tags			ledgers
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Ledger ID"
//	@Success		200			{object}	dto.Response{data=appposting.LedgerResponse}
//	@Failure		404			{object}	dto.Response
//	@Router			/ledgers/{id}/refresh [post]
func (h *LedgerHandler) Refresh(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.pathID(c, "ledger")
	if !ok {
		return
	}

	ledger, err := h.service.RefreshLedger(c.Request.Context(), tenantID, ledgerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}
