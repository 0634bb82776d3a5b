package calculations

import (
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// AssetTotalSupply - фиксированное предложение актива для оценки капитализации
const AssetTotalSupply = 21_000_000

// CompareStrategies сравнивает покупку жилья и инвестиции в актив.
// afterTaxValues - стоимость актива после CGT (см. AdjustForTax).
func CompareStrategies(home *HomeResult, asset *AssetResult, afterTaxValues []float64, inflationRate float64) (*ComparisonResult, error) {
	if home == nil || asset == nil {
		return nil, apperrors.InvalidInput("compare: оба результата моделирования обязательны")
	}
	n := home.Years
	if n <= 0 || asset.Years != n || len(afterTaxValues) != n {
		return nil, apperrors.InvalidInput("compare: длины рядов не совпадают (дом %d, актив %d, после налога %d)",
			home.Years, asset.Years, len(afterTaxValues))
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"home.house_values", home.HouseValues},
		{"home.equities", home.Equities},
		{"home.annual_interest", home.AnnualInterest},
		{"home.annual_costs", home.AnnualCosts},
		{"home.cumulative_invested", home.CumulativeInvested},
		{"asset.prices", asset.Prices},
		{"asset.cumulative_invested", asset.CumulativeInvested},
	}
	for _, s := range series {
		if len(s.values) != n {
			return nil, apperrors.InvalidInput("compare: ряд %s содержит %d значений, ожидалось %d", s.name, len(s.values), n)
		}
	}
	for i, p := range asset.Prices {
		if !utils.IsFinite(p) || p <= 0 {
			return nil, apperrors.InvalidInput("compare: цена актива в год %d должна быть > 0", i+1)
		}
	}

	realEquity, err := AdjustSeriesForInflation(home.Equities, inflationRate)
	if err != nil {
		return nil, err
	}
	realAsset, err := AdjustSeriesForInflation(afterTaxValues, inflationRate)
	if err != nil {
		return nil, err
	}

	res := &ComparisonResult{
		Years:                  n,
		RealHomeEquity:         realEquity,
		RealAssetValue:         realAsset,
		HomeNetGain:            make([]float64, n),
		AssetNetGain:           make([]float64, n),
		NominalHomeNetGain:     make([]float64, n),
		NominalAssetNetGain:    make([]float64, n),
		CumulativeHouseCosts:   make([]float64, n),
		HousePriceInAssetUnits: make([]float64, n),
	}

	costs := 0.0
	for i := 0; i < n; i++ {
		// Чистый выигрыш: реальная стоимость минус номинально вложенный капитал.
		res.HomeNetGain[i] = realEquity[i] - home.CumulativeInvested[i]
		res.AssetNetGain[i] = realAsset[i] - asset.CumulativeInvested[i]
		res.NominalHomeNetGain[i] = home.Equities[i] - home.CumulativeInvested[i]
		res.NominalAssetNetGain[i] = afterTaxValues[i] - asset.CumulativeInvested[i]

		costs += home.AnnualInterest[i] + home.AnnualCosts[i]
		res.CumulativeHouseCosts[i] = costs
		res.HousePriceInAssetUnits[i] = home.HouseValues[i] / asset.Prices[i]
	}

	last := n - 1
	res.FinalRealHomeEquity = realEquity[last]
	res.FinalRealAssetValue = realAsset[last]

	// При равенстве выигрывает покупка жилья как базовый сценарий.
	res.Winner = StrategyHome
	if res.FinalRealAssetValue > res.FinalRealHomeEquity {
		res.Winner = StrategyAsset
	}

	res.HomeMetrics = StrategyMetrics(home.Equities[last], home.CumulativeInvested[last], n)
	res.AssetMetrics = StrategyMetrics(afterTaxValues[last], asset.CumulativeInvested[last], n)
	res.ImpliedAssetMarketCap = asset.Prices[last] * AssetTotalSupply

	return res, nil
}
