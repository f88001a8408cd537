package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("load voucher: %w", NewDomainError("NOT_FOUND", "voucher not found"))
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidState))
	})

	t.Run("exposes cause", func(t *testing.T) {
		cause := errors.New("group SALES_ACCOUNTS missing")
		err := WrapDomainError("CHART_OF_ACCOUNTS_INCONSISTENT", "tenant chart of accounts is inconsistent", cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "tenant chart of accounts is inconsistent: group SALES_ACCOUNTS missing", err.Error())

		de, ok := AsDomainError(fmt.Errorf("post: %w", err))
		require.True(t, ok)
		assert.Equal(t, "CHART_OF_ACCOUNTS_INCONSISTENT", de.Code)
	})
}

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, "10.13", RoundAmount(decimal.RequireFromString("10.125")).StringFixed(2))
	assert.Equal(t, "-10.13", RoundAmount(decimal.RequireFromString("-10.125")).StringFixed(2))
	assert.True(t, ZeroIfNull(decimal.NullDecimal{}).IsZero())
	assert.Equal(t, "4.5", ZeroIfNull(decimal.NewNullDecimal(decimal.RequireFromString("4.5"))).String())
}
