package calculations

import (
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// ConfigInterface определяет интерфейс для получения конфигурации
type ConfigInterface interface {
	BalanceCap() float64
}

// GenerateGrowthRates строит убывающую кривую годовой доходности: years значений,
// линейно распределенных от initial до final включительно
func GenerateGrowthRates(initial, final float64, years int) ([]float64, error) {
	if years <= 0 {
		return nil, apperrors.InvalidInput("years: количество лет должно быть > 0")
	}
	if !utils.AllFinite(initial, final) {
		return nil, apperrors.InvalidInput("growth_rate: ставки должны быть конечными числами")
	}

	rates := make([]float64, years)
	rates[0] = initial
	if years == 1 {
		return rates, nil
	}
	step := (final - initial) / float64(years-1)
	for i := 1; i < years-1; i++ {
		rates[i] = initial + step*float64(i)
	}
	rates[years-1] = final
	return rates, nil
}

// AnnualContributions складывает годовое тело кредита и расходы на жилье -
// столько же денег уходит в актив в альтернативном сценарии
func AnnualContributions(principal, costs []float64) ([]float64, error) {
	if len(principal) != len(costs) {
		return nil, apperrors.InvalidInput("contributions: длины рядов тела кредита (%d) и расходов (%d) не совпадают",
			len(principal), len(costs))
	}
	out := make([]float64, len(principal))
	for i := range principal {
		out[i] = principal[i] + costs[i]
	}
	return out, nil
}

func validateAssetInput(in AssetInput, rates []float64) error {
	if !utils.AllFinite(in.InitialInvestment, in.InitialPrice) {
		return apperrors.InvalidInput("simulate_asset: параметры должны быть конечными числами")
	}
	if in.InitialPrice <= 0 {
		return apperrors.InvalidInput("initial_price: начальная цена актива должна быть > 0")
	}
	if in.InitialInvestment < 0 {
		return apperrors.InvalidInput("initial_investment: начальная сумма не может быть отрицательной")
	}
	if len(in.Contributions) != in.Years {
		return apperrors.InvalidInput("contributions: ожидалось %d взносов, получено %d", in.Years, len(in.Contributions))
	}
	for i, c := range in.Contributions {
		if !utils.IsFinite(c) || c < 0 {
			return apperrors.InvalidInput("contributions[%d]: взнос должен быть конечным и ≥ 0", i)
		}
	}
	for i, g := range rates {
		if g <= -1 {
			return apperrors.InvalidInput("growth_rates[%d]: доходность должна быть > -100%%", i)
		}
	}
	return nil
}

// SimulateAsset моделирует ежегодные покупки актива по растущей цене.
// cfg может быть nil - тогда верхняя граница стоимости не проверяется.
func SimulateAsset(cfg ConfigInterface, in AssetInput) (*AssetResult, error) {
	rates, err := GenerateGrowthRates(in.GrowthInitial, in.GrowthFinal, in.Years)
	if err != nil {
		return nil, err
	}
	if err := validateAssetInput(in, rates); err != nil {
		return nil, err
	}

	capValue := 0.0
	if cfg != nil {
		capValue = cfg.BalanceCap()
	}

	n := in.Years
	res := &AssetResult{
		Years:              n,
		InitialPrice:       in.InitialPrice,
		InitialInvestment:  in.InitialInvestment,
		GrowthRates:        rates,
		Prices:             make([]float64, n),
		UnitsPurchased:     make([]float64, n),
		Holdings:           make([]float64, n),
		Values:             make([]float64, n),
		CumulativeInvested: make([]float64, n),
		Contributions:      make([]float64, n),
		Ledger:             make(Ledger, 0, n+1),
	}
	res.Ledger = append(res.Ledger, ContributionRecord{Amount: in.InitialInvestment, Year: 0})

	price := in.InitialPrice
	units := in.InitialInvestment / in.InitialPrice
	invested := in.InitialInvestment

	for i := 0; i < n; i++ {
		price *= 1 + rates[i]
		if price <= 0 || !utils.IsFinite(price) {
			return nil, apperrors.InvalidInput("year %d: цена актива должна оставаться > 0", i+1)
		}

		contribution := in.Contributions[i]
		bought := contribution / price
		units += bought
		invested += contribution
		value := units * price

		if capValue > 0 && value > capValue {
			return nil, apperrors.InvalidInput("year %d: стоимость актива превысила верхнюю границу (проверьте доходность/горизонт/взносы)", i+1)
		}

		res.Prices[i] = price
		res.UnitsPurchased[i] = bought
		res.Holdings[i] = units
		res.Values[i] = value
		res.CumulativeInvested[i] = invested
		res.Contributions[i] = contribution
		res.Ledger = append(res.Ledger, ContributionRecord{Amount: contribution, Year: i + 1})
	}

	return res, nil
}
