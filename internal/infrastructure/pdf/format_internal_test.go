package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"2.5", "2,50"},
		{"1234.567", "1.234,57"},
		{"1000000", "1.000.000,00"},
		{"-1500", "-1.500,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "999", formatInt(999))
	assert.Equal(t, "12.000", formatInt(12000))
	assert.Equal(t, "-1.000", formatInt(-1000))
}
