package calculations

import (
	"math"

	"github.com/montanaflynn/stats"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

const weeksPerYear = 52.0

func validateHomeInput(in HomeInput) error {
	if !utils.AllFinite(in.HousePrice, in.Deposit, in.HouseGrowthRate, in.MortgageRate,
		in.FirstYearCosts, in.InflationRate, in.ExtraMonthlyPayment, in.AnnualIncome) {
		return apperrors.InvalidInput("simulate_home: параметры должны быть конечными числами")
	}
	switch {
	case in.HousePrice <= 0:
		return apperrors.InvalidInput("house_price: стоимость жилья должна быть > 0")
	case in.Deposit < 0:
		return apperrors.InvalidInput("deposit: первоначальный взнос не может быть отрицательным")
	case in.Deposit > in.HousePrice:
		return apperrors.InvalidInput("deposit: взнос не может превышать стоимость жилья")
	case in.HouseGrowthRate < 0:
		return apperrors.InvalidInput("house_growth_rate: рост цены жилья не может быть отрицательным")
	case in.MortgageRate < 0:
		return apperrors.InvalidInput("mortgage_rate: ставка не может быть отрицательной")
	case in.TermYears <= 0:
		return apperrors.InvalidInput("term_years: срок ипотеки должен быть > 0")
	case in.YearsToSimulate <= 0:
		return apperrors.InvalidInput("years_to_simulate: горизонт должен быть > 0")
	case in.FirstYearCosts < 0:
		return apperrors.InvalidInput("first_year_costs: расходы не могут быть отрицательными")
	case in.InflationRate <= -1:
		return apperrors.InvalidInput("inflation_rate: инфляция должна быть > -100%%")
	case in.ExtraMonthlyPayment < 0:
		return apperrors.InvalidInput("extra_monthly_payment: досрочный платеж не может быть отрицательным")
	case in.AnnualIncome < 0:
		return apperrors.InvalidInput("annual_income: доход не может быть отрицательным")
	}
	return nil
}

// SimulateHome моделирует покупку жилья в ипотеку на горизонте YearsToSimulate лет
func SimulateHome(in HomeInput) (*HomeResult, error) {
	if err := validateHomeInput(in); err != nil {
		return nil, err
	}

	baseLoan := in.HousePrice - in.Deposit
	lmi, err := LendersInsurance(baseLoan, in.HousePrice)
	if err != nil {
		return nil, err
	}
	loan := baseLoan + lmi

	var schedule *AmortizationSchedule
	if loan > 0 {
		schedule, err = Amortize(loan, in.MortgageRate, in.TermYears, in.ExtraMonthlyPayment)
		if err != nil {
			return nil, err
		}
	}

	n := in.YearsToSimulate
	aggregates := AnnualAggregates(schedule, n)

	res := &HomeResult{
		Years:              n,
		HouseValues:        make([]float64, n),
		MortgageBalances:   make([]float64, n),
		Equities:           make([]float64, n),
		AnnualInterest:     make([]float64, n),
		AnnualPrincipal:    make([]float64, n),
		AnnualCosts:        make([]float64, n),
		CumulativeInvested: make([]float64, n),
		Schedule:           schedule,
	}

	invested := in.Deposit
	for i, agg := range aggregates {
		year := float64(i + 1)
		value := in.HousePrice * math.Pow(1+in.HouseGrowthRate, year)
		cost := in.FirstYearCosts * math.Pow(1+in.InflationRate, year-1)

		// Проценты не формируют капитал, поэтому в сумму вложений не входят.
		invested += agg.Principal + cost

		res.HouseValues[i] = value
		res.MortgageBalances[i] = agg.EndBalance
		res.Equities[i] = value - agg.EndBalance
		res.AnnualInterest[i] = agg.Interest
		res.AnnualPrincipal[i] = agg.Principal
		res.AnnualCosts[i] = cost
		res.CumulativeInvested[i] = invested
	}

	res.Mortgage = summarizeMortgage(in, baseLoan, lmi, loan, schedule, res)
	return res, nil
}

func summarizeMortgage(in HomeInput, baseLoan, lmi, loan float64, schedule *AmortizationSchedule, res *HomeResult) MortgageSummary {
	summary := MortgageSummary{
		BaseLoanAmount: baseLoan,
		LVR:            baseLoan / in.HousePrice,
		InsuranceCost:  lmi,
		LoanAmount:     loan,
	}
	if schedule != nil {
		summary.MonthlyPayment = schedule.MonthlyPayment
		summary.WeeklyPayment = schedule.MonthlyPayment * 12 / weeksPerYear
		summary.TotalInterest = schedule.TotalInterest
		summary.PayoffMonth = schedule.PayoffMonth
	}

	if meanInterest, err := stats.Mean(res.AnnualInterest); err == nil {
		summary.MeanWeeklyInterest = meanInterest / weeksPerYear
	}
	if meanPrincipal, err := stats.Mean(res.AnnualPrincipal); err == nil {
		summary.MeanWeeklyPrincipal = meanPrincipal / weeksPerYear
	}

	if in.AnnualIncome > 0 {
		summary.AffordabilityEvaluated = true
		summary.MonthlyIncome = in.AnnualIncome / 12
		summary.MonthlySurplus = summary.MonthlyIncome - summary.MonthlyPayment
		summary.Affordable = summary.MonthlySurplus >= 0
	}
	return summary
}
