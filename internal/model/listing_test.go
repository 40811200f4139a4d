package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestListing_ComputedPricePerRound(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{"9mm box", "24.99", 50, "0.5"},
		{".308 box", "35.99", 20, "1.8"},
		{".45 box", "42.99", 50, "0.86"},
		{"empty pack", "10.00", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Listing{Price: decimal.RequireFromString(tt.price), Quantity: tt.quantity}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(l.ComputedPricePerRound()),
				"got %s", l.ComputedPricePerRound())
		})
	}
}
