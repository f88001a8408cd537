package handler

import (
	"context"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VoucherService is the part of the posting service the voucher endpoints use
type VoucherService interface {
	CreateDraft(ctx context.Context, tenantID uuid.UUID, req appposting.CreateVoucherRequest) (*appposting.VoucherResponse, error)
	GetVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*appposting.VoucherResponse, error)
	PostVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req appposting.PostVoucherRequest) (*appposting.PostingResponse, error)
	ReverseVoucher(ctx context.Context, tenantID, voucherID uuid.UUID, req appposting.ReverseVoucherRequest) (*appposting.ReversalResponse, error)
	CancelVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*appposting.CancelResponse, error)
}

// VoucherHandler handles voucher API endpoints
type VoucherHandler struct {
	BaseHandler
	service VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(service VoucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

// Create godoc
//
//	@ID				createVoucher
//	@Summary		Draft a voucher
//	@Description	Stores a draft voucher and its items. Nothing is posted.
//	@Tags			vouchers
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID		header		string							true	"Tenant ID"
//	@Param			Idempotency-Key	header		string							false	"Idempotency key"
//	@Param			request			body		appposting.CreateVoucherRequest	true	"Voucher"
//	@Success		201				{object}	dto.Response{data=appposting.VoucherResponse}
//	@Failure		400				{object}	dto.Response
//	@Failure		409				{object}	dto.Response
//	@Router			/vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appposting.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	voucher, err := h.service.CreateDraft(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, voucher)
}

// Get godoc
//
//	@ID				getVoucher
//	@Summary		Get a voucher
//	@Description	Returns the voucher with its items and ledger entries
//	@Tags			vouchers
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Voucher ID"
//	@Success		200			{object}	dto.Response{data=appposting.VoucherResponse}
//	@Failure		404			{object}	dto.Response
//	@Router			/vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	voucherID, ok := h.pathID(c, "voucher")
	if !ok {
		return
	}

	voucher, err := h.service.GetVoucher(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// Post godoc
//
//	@ID				postVoucher
//	@Summary		Post a voucher
//	@Description	Writes the voucher's ledger entries and refreshes the touched ledgers in one
//	@Description	transaction. Journals and contras take their entry lines in the body.
//	@Tags			vouchers
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID		header		string							true	"Tenant ID"
//	@Param			Idempotency-Key	header		string							false	"Idempotency key"
//	@Param			id				path		string							true	"Voucher ID"
//	@Param			request			body		appposting.PostVoucherRequest	false	"Entry lines"
//	@Success		200				{object}	dto.Response{data=appposting.PostingResponse}
//	@Failure		404				{object}	dto.Response
//	@Failure		409				{object}	dto.Response
//	@Failure		422				{object}	dto.Response
//	@Failure		500				{object}	dto.Response
//	@Router			/vouchers/{id}/post [post]
func (h *VoucherHandler) Post(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	voucherID, ok := h.pathID(c, "voucher")
	if !ok {
		return
	}
	var req appposting.PostVoucherRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	result, err := h.service.PostVoucher(c.Request.Context(), tenantID, voucherID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reverse godoc
//
//	@ID				reverseVoucher
//	@Summary		Reverse a posted voucher
//	@Description	Posts a credit note (sales) or debit note (purchase) with the same items and
//	@Description	cancels the original
//	@Tags			vouchers
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID		header		string								true	"Tenant ID"
//	@Param			Idempotency-Key	header		string								false	"Idempotency key"
//	@Param			id				path		string								true	"Voucher ID"
//	@Param			request			body		appposting.ReverseVoucherRequest	false	"Note details"
//	@Success		201				{object}	dto.Response{data=appposting.ReversalResponse}
//	@Failure		404				{object}	dto.Response
//	@Failure		422				{object}	dto.Response
//	@Router			/vouchers/{id}/reverse [post]
func (h *VoucherHandler) Reverse(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	voucherID, ok := h.pathID(c, "voucher")
	if !ok {
		return
	}
	var req appposting.ReverseVoucherRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	result, err := h.service.ReverseVoucher(c.Request.Context(), tenantID, voucherID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Cancel godoc
//
//	@ID				cancelVoucher
//	@Summary		Cancel a posted voucher by deleting its entries
//	@Description	Only available when destructive cancellation is enabled
//	@Tags			vouchers
//	@Produce		json
//	@Param			X-Tenant-ID		header		string	true	"Tenant ID"
//	@Param			Idempotency-Key	header		string	false	"Idempotency key"
//	@Param			id				path		string	true	"Voucher ID"
//	@Success		200				{object}	dto.Response{data=appposting.CancelResponse}
//	@Failure		403				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Failure		422				{object}	dto.Response
//	@Router			/vouchers/{id}/cancel [post]
func (h *VoucherHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	voucherID, ok := h.pathID(c, "voucher")
	if !ok {
		return
	}

	result, err := h.service.CancelVoucher(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
