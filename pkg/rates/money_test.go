package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToKRW(t *testing.T) {
	assert.Equal(t, "10400", ToKRW(8, 1300).String())
	assert.Equal(t, "8451", ToKRW(6.5, 1300.15).String())
	assert.True(t, ToKRW(0, 1385.5).IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$8.00", FormatUSD(8))
	assert.Equal(t, "$1,234.50", FormatUSD(1234.5))
	assert.Equal(t, "₩10,400", FormatKRW(decimal.NewFromInt(10400)))
	assert.Equal(t, "$8.00 (₩10,400)", Dual(8, 1300))
}
