package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPurchaseTier(t *testing.T) {
	assert.True(t, IsPurchaseTier(0.25))
	assert.True(t, IsPurchaseTier(0.5))
	assert.True(t, IsPurchaseTier(1.0))

	assert.False(t, IsPurchaseTier(0))
	assert.False(t, IsPurchaseTier(0.75))
	assert.False(t, IsPurchaseTier(2))
	assert.False(t, IsPurchaseTier(10))
	assert.False(t, IsPurchaseTier(-0.5))
}

func TestTotalPrice(t *testing.T) {
	// Сценарий Laddu: 500 за кг, покупка 0.5 кг
	assert.Equal(t, 250.0, TotalPrice(500, 0.5))

	assert.Equal(t, 125.0, TotalPrice(500, 0.25))
	assert.Equal(t, 500.0, TotalPrice(500, 1.0))
	assert.Equal(t, 0.0, TotalPrice(0, 0.5))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 33.33, RoundCurrency(133.33/4))
	assert.Equal(t, 0.08, RoundCurrency(0.075))
	assert.Equal(t, 250.0, RoundCurrency(250.0))
	assert.Equal(t, 99.99, RoundCurrency(99.994))
}

func TestTierPrices(t *testing.T) {
	prices := TierPrices(400)

	assert.Len(t, prices, 3)
	assert.Equal(t, 100.0, prices["0.25"])
	assert.Equal(t, 200.0, prices["0.5"])
	assert.Equal(t, 400.0, prices["1"])
}
