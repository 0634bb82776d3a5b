// Package report форматирует результаты сценария: CSV по годам, JSON и
// текстовую сводку для терминала.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// Money выводится в CSV с двумя знаками после запятой
type Money float64

// MarshalCSV реализует gocsv.TypeMarshaller
func (m Money) MarshalCSV() (string, error) {
	return decimal.NewFromFloat(float64(m)).StringFixed(2), nil
}

// Rate выводится в CSV с четырьмя знаками
type Rate float64

// MarshalCSV реализует gocsv.TypeMarshaller
func (r Rate) MarshalCSV() (string, error) {
	return decimal.NewFromFloat(float64(r)).StringFixed(4), nil
}

// YearRow - одна строка годовой таблицы
type YearRow struct {
	Year                 int   `csv:"year"`
	HouseValue           Money `csv:"house_value"`
	MortgageBalance      Money `csv:"mortgage_balance"`
	HomeEquity           Money `csv:"home_equity"`
	RealHomeEquity       Money `csv:"real_home_equity"`
	AnnualInterest       Money `csv:"annual_interest"`
	AnnualPrincipal      Money `csv:"annual_principal"`
	AnnualCosts          Money `csv:"annual_costs"`
	HomeInvested         Money `csv:"home_invested"`
	AssetGrowthRate      Rate  `csv:"asset_growth_rate"`
	AssetPrice           Money `csv:"asset_price"`
	AssetHoldings        Rate  `csv:"asset_holdings"`
	AssetValue           Money `csv:"asset_value"`
	AfterTaxAssetValue   Money `csv:"after_tax_asset_value"`
	RealAssetValue       Money `csv:"real_asset_value"`
	AssetInvested        Money `csv:"asset_invested"`
	CumulativeHouseCosts Money `csv:"cumulative_house_costs"`
	AnnualRent           Money `csv:"annual_rent"`
}

// Rows собирает годовые строки из результата сценария
func Rows(res *calculations.ScenarioResult) []YearRow {
	home, asset, cmp := res.Home, res.Asset, res.Comparison
	rows := make([]YearRow, home.Years)
	for i := range rows {
		row := YearRow{
			Year:                 i + 1,
			HouseValue:           Money(home.HouseValues[i]),
			MortgageBalance:      Money(home.MortgageBalances[i]),
			HomeEquity:           Money(home.Equities[i]),
			RealHomeEquity:       Money(cmp.RealHomeEquity[i]),
			AnnualInterest:       Money(home.AnnualInterest[i]),
			AnnualPrincipal:      Money(home.AnnualPrincipal[i]),
			AnnualCosts:          Money(home.AnnualCosts[i]),
			HomeInvested:         Money(home.CumulativeInvested[i]),
			AssetGrowthRate:      Rate(asset.GrowthRates[i]),
			AssetPrice:           Money(asset.Prices[i]),
			AssetHoldings:        Rate(asset.Holdings[i]),
			AssetValue:           Money(asset.Values[i]),
			AfterTaxAssetValue:   Money(res.AfterTaxValues[i]),
			RealAssetValue:       Money(cmp.RealAssetValue[i]),
			AssetInvested:        Money(asset.CumulativeInvested[i]),
			CumulativeHouseCosts: Money(cmp.CumulativeHouseCosts[i]),
		}
		if res.Rent != nil {
			row.AnnualRent = Money(res.Rent.AnnualRent[i])
		}
		rows[i] = row
	}
	return rows
}

// WriteCSV пишет годовую таблицу в CSV
func WriteCSV(w io.Writer, res *calculations.ScenarioResult) error {
	rows := Rows(res)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteJSON пишет полный результат в JSON
func WriteJSON(w io.Writer, res *calculations.ScenarioResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteSummary пишет короткую сводку для терминала
func WriteSummary(w io.Writer, res *calculations.ScenarioResult) error {
	s, m, c := res.Scenario, res.Home.Mortgage, res.Comparison
	last := c.Years - 1

	lines := []string{
		fmt.Sprintf("Горизонт: %d лет, инфляция %.2f%%, CGT %.0f%%", c.Years, s.InflationRate*100, s.CGTRate*100),
		"",
		"Ипотека",
		fmt.Sprintf("  Кредит:              %s (LVR %.1f%%, LMI %s)", utils.FormatMoney(m.LoanAmount), m.LVR*100, utils.FormatMoney(m.InsuranceCost)),
		fmt.Sprintf("  Платеж в месяц:      %s", utils.FormatMoney(m.MonthlyPayment)),
		fmt.Sprintf("  Платеж в неделю:     %s", utils.FormatMoney(m.WeeklyPayment)),
		fmt.Sprintf("  Проценты всего:      %s", utils.FormatMoney(m.TotalInterest)),
	}
	if m.AffordabilityEvaluated {
		verdict := "доступна"
		if !m.Affordable {
			verdict = "недоступна"
		}
		lines = append(lines, fmt.Sprintf("  Остаток дохода:      %s в месяц (%s)", utils.FormatMoney(m.MonthlySurplus), verdict))
	}
	lines = append(lines,
		"",
		"Итог в ценах первого года",
		fmt.Sprintf("  Капитал в жилье:     %s (номинально %s)", utils.FormatMoney(c.FinalRealHomeEquity), utils.FormatMoney(res.Home.Equities[last])),
		fmt.Sprintf("  Актив после налога:  %s (номинально %s)", utils.FormatMoney(c.FinalRealAssetValue), utils.FormatMoney(res.AfterTaxValues[last])),
		fmt.Sprintf("  ROI жилья:           %.2f%%, годовых %.2f%%", c.HomeMetrics.ROIPercent, c.HomeMetrics.AnnualizedReturnPercent),
		fmt.Sprintf("  ROI актива:          %.2f%%, годовых %.2f%%", c.AssetMetrics.ROIPercent, c.AssetMetrics.AnnualizedReturnPercent),
		fmt.Sprintf("  Жилье в единицах актива: %.2f", c.HousePriceInAssetUnits[last]),
		"",
		fmt.Sprintf("Выигрывает: %s", c.Winner),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
