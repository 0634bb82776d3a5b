package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// StrategyMetrics рассчитывает метрики роста стратегии по итоговой стоимости
// и сумме вложений за years лет
func StrategyMetrics(finalValue, totalInvested float64, years int) GrowthMetrics {
	// ROI (Return on Investment) в процентах
	var roiPercent float64
	if totalInvested > 0 {
		roiPercent = utils.Round2(((finalValue - totalInvested) / totalInvested) * 100)
	}

	// Средняя годовая доходность
	var annualizedReturn float64
	if years > 0 && totalInvested > 0 && finalValue > 0 {
		annualizedReturn = utils.Round2((math.Pow(finalValue/totalInvested, 1.0/float64(years)) - 1.0) * 100)
	}

	return GrowthMetrics{
		ROIPercent:              roiPercent,
		AnnualizedReturnPercent: annualizedReturn,
		CapitalGain:             utils.Round2(finalValue - totalInvested),
		TotalInvested:           utils.Round2(totalInvested),
		FinalValue:              utils.Round2(finalValue),
		Years:                   float64(years),
	}
}
