//go:build unit

package cartype_test

import (
	"testing"

	"carrental/internal/domain/cartype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarType(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ct, err := cartype.NewCarType("SEDAN", "Sedan", "Four doors", 5000, "EUR", 3, "https://img/sedan.jpg", map[string]any{"seats": 5})
		require.NoError(t, err)
		assert.Equal(t, "SEDAN", ct.ID())
		assert.Equal(t, 3, ct.TotalQuantity())
	})

	t.Run("id is trimmed", func(t *testing.T) {
		ct, err := cartype.NewCarType("  SUV  ", "SUV", "", 5000, "EUR", 1, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "SUV", ct.ID())
	})

	tests := []struct {
		name     string
		id       string
		price    int64
		quantity int
		wantErr  error
	}{
		{name: "empty id", id: "", price: 5000, quantity: 1, wantErr: cartype.ErrEmptyTypeID},
		{name: "blank id", id: "   ", price: 5000, quantity: 1, wantErr: cartype.ErrEmptyTypeID},
		{name: "zero quantity", id: "SEDAN", price: 5000, quantity: 0, wantErr: cartype.ErrNonPositiveQuantity},
		{name: "negative quantity", id: "SEDAN", price: 5000, quantity: -1, wantErr: cartype.ErrNonPositiveQuantity},
		{name: "negative price", id: "SEDAN", price: -1, quantity: 1, wantErr: cartype.ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cartype.NewCarType(tt.id, "", "", tt.price, "EUR", tt.quantity, "", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCarType_EstimatedTotalCents(t *testing.T) {
	ct, err := cartype.NewCarType("SEDAN", "Sedan", "", 5000, "EUR", 3, "", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), ct.EstimatedTotalCents(2))
	// a quote is never for less than one day
	assert.Equal(t, int64(5000), ct.EstimatedTotalCents(0))
}
