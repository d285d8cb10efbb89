package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		minLevel float64
		want     StockStatus
	}{
		{"zero is out of stock", 0, 200, StatusOutOfStock},
		{"zero with zero minimum is still out of stock", 0, 0, StatusOutOfStock},
		{"at minimum is low", 200, 200, StatusLowStock},
		{"below minimum is low", 150, 200, StatusLowStock},
		{"above minimum is in stock", 201, 200, StatusInStock},
		{"positive with zero minimum is in stock", 1, 0, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.quantity, tt.minLevel))
		})
	}
}

func TestTypeForDelta(t *testing.T) {
	assert.Equal(t, TypeComingIn, TypeForDelta(5))
	assert.Equal(t, TypeGoingOut, TypeForDelta(-5))
}

func TestTransactionSourceValid(t *testing.T) {
	assert.True(t, SourceSale.Valid())
	assert.True(t, SourceWastage.Valid())
	assert.True(t, SourceTransferOut.Valid())
	assert.False(t, TransactionSource("gift").Valid())
}
