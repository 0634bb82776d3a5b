package calculations

import (
	"math"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// MonthlyPayment рассчитывает аннуитетный платеж:
// P = L·r·(1+r)^n / ((1+r)^n − 1), при r = 0 платеж равен L/n
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := termYears * 12
	r := annualRate / 12.0
	if r == 0.0 {
		return principal / float64(n)
	}
	factor := math.Pow(1.0+r, float64(n))
	return principal * r * factor / (factor - 1.0)
}

// Amortize рассчитывает помесячный график погашения ипотеки с фиксированной ставкой.
// Досрочный платеж extraMonthly добавляется к каждому платежу, и график
// заканчивается в месяце, когда остаток становится нулевым.
func Amortize(principal, annualRate float64, termYears int, extraMonthly float64) (*AmortizationSchedule, error) {
	if !utils.AllFinite(principal, annualRate, extraMonthly) {
		return nil, apperrors.InvalidInput("amortize: параметры должны быть конечными числами")
	}
	if principal <= 0 {
		return nil, apperrors.InvalidInput("principal: сумма кредита должна быть > 0")
	}
	if annualRate < 0 {
		return nil, apperrors.InvalidInput("annual_rate: ставка не может быть отрицательной")
	}
	if termYears <= 0 {
		return nil, apperrors.InvalidInput("term_years: срок должен быть > 0")
	}
	if extraMonthly < 0 {
		return nil, apperrors.InvalidInput("extra_monthly: досрочный платеж не может быть отрицательным")
	}

	n := termYears * 12
	r := annualRate / 12.0
	payment := MonthlyPayment(principal, annualRate, termYears)

	entries := make([]AmortizationEntry, 0, n)
	balance := principal
	totalInterest := 0.0
	totalPaid := 0.0

	for m := 1; m <= n; m++ {
		interest := balance * r
		principalComponent := payment + extraMonthly - interest

		// Последний платеж забирает весь остаток, включая погрешность округления.
		if principalComponent >= balance || m == n {
			principalComponent = balance
			balance = 0
		} else {
			balance -= principalComponent
		}

		totalInterest += interest
		totalPaid += interest + principalComponent

		entries = append(entries, AmortizationEntry{
			Month:     m,
			Year:      (m-1)/12 + 1,
			Payment:   interest + principalComponent,
			Interest:  interest,
			Principal: principalComponent,
			Balance:   balance,
		})

		if balance <= 0 {
			break
		}
	}

	return &AmortizationSchedule{
		Terms: LoanTerms{
			Principal:    principal,
			AnnualRate:   annualRate,
			TermYears:    termYears,
			ExtraMonthly: extraMonthly,
		},
		MonthlyPayment: payment,
		TotalInterest:  totalInterest,
		TotalPaid:      totalPaid,
		PayoffMonth:    len(entries),
		Entries:        entries,
	}, nil
}

// AnnualAggregates группирует график по годам и возвращает ровно years записей.
// Годы после погашения кредита имеют нулевые проценты, тело и остаток.
func AnnualAggregates(schedule *AmortizationSchedule, years int) []AnnualAggregate {
	if years <= 0 {
		return nil
	}
	aggregates := make([]AnnualAggregate, years)
	for i := range aggregates {
		aggregates[i].Year = i + 1
	}
	if schedule == nil {
		return aggregates
	}
	for _, e := range schedule.Entries {
		if e.Year > years {
			break
		}
		a := &aggregates[e.Year-1]
		a.Interest += e.Interest
		a.Principal += e.Principal
		a.EndBalance = e.Balance
	}
	return aggregates
}
