package calculations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

func fixtureHome() *HomeResult {
	return &HomeResult{
		Years:              2,
		HouseValues:        []float64{110, 121},
		MortgageBalances:   []float64{50, 40},
		Equities:           []float64{60, 81},
		AnnualInterest:     []float64{5, 4},
		AnnualPrincipal:    []float64{10, 10},
		AnnualCosts:        []float64{2, 2},
		CumulativeInvested: []float64{62, 74},
	}
}

func fixtureAsset() *AssetResult {
	return &AssetResult{
		Years:              2,
		InitialPrice:       10,
		Prices:             []float64{11, 22},
		Values:             []float64{70, 90},
		CumulativeInvested: []float64{62, 74},
	}
}

func withHome(mutate func(*HomeResult)) *HomeResult {
	h := fixtureHome()
	mutate(h)
	return h
}

func withAsset(mutate func(*AssetResult)) *AssetResult {
	a := fixtureAsset()
	mutate(a)
	return a
}

func TestCompareStrategies(t *testing.T) {
	res, err := CompareStrategies(fixtureHome(), fixtureAsset(), []float64{68, 88}, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Years)
	assert.InDeltaSlice(t, []float64{60, 81 / 1.1}, res.RealHomeEquity, 1e-9)
	assert.InDeltaSlice(t, []float64{68, 80}, res.RealAssetValue, 1e-9)
	// Чистый выигрыш: реальная стоимость минус номинальные вложения.
	assert.InDeltaSlice(t, []float64{60 - 62, 81/1.1 - 74}, res.HomeNetGain, 1e-9)
	assert.InDeltaSlice(t, []float64{68 - 62, 80 - 74}, res.AssetNetGain, 1e-9)
	assert.Equal(t, []float64{-2, 7}, res.NominalHomeNetGain)
	assert.Equal(t, []float64{6, 14}, res.NominalAssetNetGain)
	assert.Equal(t, []float64{7, 13}, res.CumulativeHouseCosts)
	assert.InDeltaSlice(t, []float64{10, 5.5}, res.HousePriceInAssetUnits, 1e-9)

	assert.InDelta(t, 80, res.FinalRealAssetValue, 1e-9)
	assert.Equal(t, StrategyAsset, res.Winner)
	assert.Equal(t, 22.0*AssetTotalSupply, res.ImpliedAssetMarketCap)
	assert.Equal(t, 88.0, res.AssetMetrics.FinalValue)
	assert.Equal(t, 74.0, res.HomeMetrics.TotalInvested)
}

func TestCompareStrategies_TieGoesToHome(t *testing.T) {
	res, err := CompareStrategies(fixtureHome(), fixtureAsset(), []float64{60, 81}, 0)
	require.NoError(t, err)
	assert.Equal(t, res.FinalRealHomeEquity, res.FinalRealAssetValue)
	assert.Equal(t, StrategyHome, res.Winner)
}

func TestCompareStrategies_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		home     *HomeResult
		asset    *AssetResult
		afterTax []float64
		rate     float64
	}{
		{"nil home", nil, fixtureAsset(), []float64{1, 2}, 0},
		{"after-tax length mismatch", fixtureHome(), fixtureAsset(), []float64{1}, 0},
		{"horizon mismatch", fixtureHome(), &AssetResult{Years: 3}, []float64{1, 2}, 0},
		{"inflation at -100%", fixtureHome(), fixtureAsset(), []float64{1, 2}, -1},
		{"home invested missing", withHome(func(h *HomeResult) { h.CumulativeInvested = nil }), fixtureAsset(), []float64{1, 2}, 0},
		{"home house values short", withHome(func(h *HomeResult) { h.HouseValues = h.HouseValues[:1] }), fixtureAsset(), []float64{1, 2}, 0},
		{"home interest missing", withHome(func(h *HomeResult) { h.AnnualInterest = nil }), fixtureAsset(), []float64{1, 2}, 0},
		{"home costs short", withHome(func(h *HomeResult) { h.AnnualCosts = []float64{1} }), fixtureAsset(), []float64{1, 2}, 0},
		{"home equities missing", withHome(func(h *HomeResult) { h.Equities = nil }), fixtureAsset(), []float64{1, 2}, 0},
		{"asset invested missing", fixtureHome(), withAsset(func(a *AssetResult) { a.CumulativeInvested = nil }), []float64{1, 2}, 0},
		{"asset prices short", fixtureHome(), withAsset(func(a *AssetResult) { a.Prices = a.Prices[:1] }), []float64{1, 2}, 0},
		{"asset price zero", fixtureHome(), withAsset(func(a *AssetResult) { a.Prices[1] = 0 }), []float64{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompareStrategies(tt.home, tt.asset, tt.afterTax, tt.rate)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestStrategyMetrics(t *testing.T) {
	m := StrategyMetrics(121, 100, 2)
	assert.Equal(t, 21.0, m.ROIPercent)
	assert.Equal(t, 10.0, m.AnnualizedReturnPercent)
	assert.Equal(t, 21.0, m.CapitalGain)
	assert.Equal(t, 2.0, m.Years)

	empty := StrategyMetrics(0, 0, 5)
	assert.Equal(t, 0.0, empty.ROIPercent)
	assert.Equal(t, 0.0, empty.AnnualizedReturnPercent)
}
