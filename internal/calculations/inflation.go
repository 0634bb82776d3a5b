package calculations

import (
	"math"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

func checkInflationRate(rate float64) error {
	if !utils.IsFinite(rate) || rate <= -1 {
		return apperrors.InvalidInput("inflation_rate: инфляция должна быть конечной и > -100%%")
	}
	return nil
}

// AdjustForInflation приводит номинальную сумму к ценам первого года:
// value / (1+rate)^(year−1)
func AdjustForInflation(value, rate float64, year int) (float64, error) {
	if err := checkInflationRate(rate); err != nil {
		return 0, err
	}
	if year < 1 {
		return 0, apperrors.InvalidInput("year: год должен быть ≥ 1")
	}
	return value / math.Pow(1+rate, float64(year-1)), nil
}

// AdjustSeriesForInflation применяет AdjustForInflation к ряду, где индекс i - год i+1
func AdjustSeriesForInflation(values []float64, rate float64) ([]float64, error) {
	if err := checkInflationRate(rate); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		adjusted, err := AdjustForInflation(v, rate, i+1)
		if err != nil {
			return nil, err
		}
		out[i] = adjusted
	}
	return out, nil
}

// FutureValue рассчитывает сумму через years лет при ежемесячных взносах
// и ежемесячной капитализации по ставке annualRate/12
func FutureValue(current, monthlyContribution, annualRate float64, years int) (float64, error) {
	if years < 0 {
		return 0, apperrors.InvalidInput("years: срок не может быть отрицательным")
	}
	if !utils.AllFinite(current, monthlyContribution, annualRate) {
		return 0, apperrors.InvalidInput("future_value: параметры должны быть конечными числами")
	}
	months := years * 12
	r := annualRate / 12
	fv := current * math.Pow(1+r, float64(months))
	for m := 1; m <= months; m++ {
		fv += monthlyContribution * math.Pow(1+r, float64(months-m))
	}
	return fv, nil
}

// RequiredMonthlyAddition рассчитывает ежемесячный взнос, нужный для
// достижения target за years лет
func RequiredMonthlyAddition(target, current, annualRate float64, years int) (float64, error) {
	if years <= 0 {
		return 0, apperrors.InvalidInput("years: срок должен быть > 0")
	}
	if !utils.AllFinite(target, current, annualRate) {
		return 0, apperrors.InvalidInput("required_monthly: параметры должны быть конечными числами")
	}
	months := float64(years * 12)
	r := annualRate / 12
	if r == 0 {
		return (target - current) / months, nil
	}
	growth := math.Pow(1+r, months)
	return (target - current*growth) / ((growth - 1) / r), nil
}

// RealDebtSeries показывает, как инфляция обесценивает неизменный номинальный долг
// по месяцам. Месячная инфляция: (1+annual)^(1/12) − 1.
func RealDebtSeries(loan, annualInflation float64, months int) ([]float64, error) {
	if err := checkInflationRate(annualInflation); err != nil {
		return nil, err
	}
	if months <= 0 {
		return nil, apperrors.InvalidInput("months: количество месяцев должно быть > 0")
	}
	if !utils.IsFinite(loan) || loan < 0 {
		return nil, apperrors.InvalidInput("loan: сумма долга должна быть конечной и ≥ 0")
	}
	monthly := math.Pow(1+annualInflation, 1.0/12) - 1
	out := make([]float64, months)
	cumulative := 1.0
	for m := range out {
		cumulative *= 1 + monthly
		out[m] = loan / cumulative
	}
	return out, nil
}

// RentEquivalent строит сценарий аренды: аренда первого года равна процентам
// по ипотеке за первый год и дальше индексируется на инфляцию
func RentEquivalent(annualInterest []float64, inflationRate float64, years int) (*RentResult, error) {
	if len(annualInterest) == 0 {
		return nil, apperrors.InvalidInput("annual_interest: ряд процентов пуст")
	}
	if err := checkInflationRate(inflationRate); err != nil {
		return nil, err
	}
	if years <= 0 {
		return nil, apperrors.InvalidInput("years: горизонт должен быть > 0")
	}

	initial := annualInterest[0]
	res := &RentResult{
		InitialAnnualRent: initial,
		AnnualRent:        make([]float64, years),
		CumulativeRent:    make([]float64, years),
	}
	total := 0.0
	for i := 0; i < years; i++ {
		rent := initial * math.Pow(1+inflationRate, float64(i))
		total += rent
		res.AnnualRent[i] = rent
		res.CumulativeRent[i] = total
	}
	return res, nil
}
