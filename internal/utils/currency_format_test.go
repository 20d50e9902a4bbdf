package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "100.01", FormatMoney(decimal.RequireFromString("100.005")))
	assert.Equal(t, "-3.00", FormatMoney(decimal.NewFromInt(-3)))
	assert.Equal(t, "367.25", FormatMoney(decimal.RequireFromString("367.2500")))
}
