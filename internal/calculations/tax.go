package calculations

import (
	"math"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// cgtDiscount применяется к ставке, если актив удерживался строго больше года
const cgtDiscount = 0.5

// AdjustForTax рассчитывает стоимость портфеля после налога на прирост капитала.
//
// Налог виртуальный: каждый год считается так, будто весь портфель продан.
// Убытки не зачитываются против прибыли и не переносятся. Это упрощение
// для сравнения стратегий, а не реальный налоговый учет.
func AdjustForTax(result *AssetResult, ledger Ledger, cgtRate float64) ([]float64, error) {
	if result == nil {
		return nil, apperrors.InvalidInput("adjust_for_tax: результат моделирования отсутствует")
	}
	if !utils.IsFinite(cgtRate) || cgtRate < 0 || cgtRate > 1 {
		return nil, apperrors.InvalidInput("cgt_rate: ставка налога должна быть в диапазоне [0; 1]")
	}
	if len(result.Prices) != result.Years || len(result.Values) != result.Years {
		return nil, apperrors.InvalidInput("adjust_for_tax: ряды результата не совпадают с горизонтом %d", result.Years)
	}

	purchasePrices := make([]float64, len(ledger))
	for i, rec := range ledger {
		p, ok := result.PriceAt(rec.Year)
		if !ok {
			return nil, apperrors.InvalidInput("ledger[%d]: год %d вне горизонта [0; %d]", i, rec.Year, result.Years)
		}
		if !utils.IsFinite(p) || p <= 0 {
			return nil, apperrors.InvalidInput("ledger[%d]: цена покупки в год %d должна быть > 0", i, rec.Year)
		}
		if !utils.IsFinite(rec.Amount) || rec.Amount < 0 {
			return nil, apperrors.InvalidInput("ledger[%d]: сумма взноса должна быть конечной и ≥ 0", i)
		}
		purchasePrices[i] = p
	}

	afterTax := make([]float64, result.Years)
	for t := 1; t <= result.Years; t++ {
		price := result.Prices[t-1]
		tax := 0.0
		for i, rec := range ledger {
			held := t - rec.Year
			if held <= 0 {
				continue
			}
			current := rec.Amount / purchasePrices[i] * price
			gain := math.Max(current-rec.Amount, 0)
			rate := cgtRate
			if held > 1 {
				rate *= cgtDiscount
			}
			tax += gain * rate
		}
		afterTax[t-1] = result.Values[t-1] - tax
	}
	return afterTax, nil
}
