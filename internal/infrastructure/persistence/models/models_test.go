package models

import (
	"testing"
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerModel_ToDomainNormalizesSides(t *testing.T) {
	tests := []struct {
		stored string
		want   accounting.BalanceSide
	}{
		{"Dr", accounting.SideDebit},
		{"CR", accounting.SideCredit},
		{"credit", accounting.SideCredit},
		{"", accounting.SideDebit},
		{"??", accounting.SideDebit},
	}
	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			m := &LedgerModel{OpeningSide: tt.stored, BalanceSide: tt.stored}
			l := m.ToDomain()
			assert.Equal(t, tt.want, l.OpeningSide)
			assert.Equal(t, tt.want, l.BalanceSide)
		})
	}
}

func TestVoucherModelFromDomain_CarriesTenantAndItems(t *testing.T) {
	tenantID := uuid.New()
	v := accounting.NewVoucher(tenantID, "INV-1", accounting.VoucherSalesInvoice, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	v.AddItem(accounting.VoucherItem{CGSTAmount: decimal.NewNullDecimal(decimal.NewFromInt(9))})

	m := VoucherModelFromDomain(v)
	assert.Equal(t, tenantID, m.TenantID)
	assert.Equal(t, v.ID, m.ID)
	assert.Len(t, m.Items, 1)
	assert.Equal(t, v.ID, m.Items[0].VoucherID)
	assert.Equal(t, tenantID, m.Items[0].TenantID)
	assert.False(t, m.Items[0].SGSTAmount.Valid)

	back := m.ToDomain()
	assert.Equal(t, accounting.VoucherStatusDraft, back.Status)
	assert.True(t, back.Items[0].CGSTAmount.Decimal.Equal(decimal.NewFromInt(9)))
}
