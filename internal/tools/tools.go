package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/internal/config"
	"github.com/cloud-ru/mcp-wealth-sim/internal/metrics"
	"github.com/cloud-ru/mcp-wealth-sim/internal/scenario"
	"github.com/cloud-ru/mcp-wealth-sim/internal/validators"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// toolCall сопровождает один вызов инструмента: span, счетчики, длительность
type toolCall struct {
	name  string
	span  trace.Span
	start time.Time
}

func startCall(ctx context.Context, tracer trace.Tracer, name string) (context.Context, *toolCall) {
	ctx, span := tracer.Start(ctx, name)
	metrics.APICalls.WithLabelValues("mcp", name, "started").Inc()
	return ctx, &toolCall{name: name, span: span, start: time.Now()}
}

func (c *toolCall) end() {
	metrics.SimulationDuration.WithLabelValues(c.name).Observe(time.Since(c.start).Seconds())
	c.span.End()
}

func (c *toolCall) invalid(err error) error {
	c.span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(c.name, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

func (c *toolCall) failed(err error) error {
	c.span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(c.name, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *toolCall) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.name, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "success").Inc()
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// AmortizeResult - график погашения и годовые итоги
type AmortizeResult struct {
	Schedule *calculations.AmortizationSchedule `json:"schedule"`
	Annual   []calculations.AnnualAggregate     `json:"annual"`
}

// AmortizeHandler обрабатывает запрос на построение графика погашения ипотеки
func AmortizeHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "amortize")
		defer call.end()

		principal, err1 := getFloat(params, "principal")
		annualRate, err2 := getFloat(params, "annual_rate")
		termYears, err3 := getInt(params, "term_years")
		extra, err4 := getFloatOr(params, "extra_monthly_payment", 0)
		if err := firstError(err1, err2, err3, err4); err != nil {
			return nil, call.invalid(err)
		}
		years, err := getIntOr(params, "years", termYears)
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("annual_rate", annualRate),
			attribute.Int("term_years", termYears),
			attribute.Float64("extra_monthly_payment", extra),
		)

		if err := firstError(
			validators.CheckPrincipal(cfg, principal),
			validators.CheckRate(cfg, "annual_rate", annualRate),
			validators.CheckTermYears(cfg, termYears),
			validators.CheckAmount(cfg, "extra_monthly_payment", extra),
			validators.CheckYears(cfg, years),
		); err != nil {
			return nil, call.invalid(err)
		}

		schedule, err := calculations.Amortize(principal, annualRate, termYears, extra)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.Float64("monthly_payment", schedule.MonthlyPayment),
			attribute.Int("payoff_month", schedule.PayoffMonth),
		)
		return &AmortizeResult{
			Schedule: schedule,
			Annual:   calculations.AnnualAggregates(schedule, years),
		}, nil
	}
}

// SimulateHomeHandler обрабатывает запрос на моделирование покупки жилья
func SimulateHomeHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "simulate_home")
		defer call.end()

		var in calculations.HomeInput
		var errs [10]error
		in.HousePrice, errs[0] = getFloat(params, "house_price")
		in.Deposit, errs[1] = getFloat(params, "deposit")
		in.HouseGrowthRate, errs[2] = getFloat(params, "house_growth_rate")
		in.MortgageRate, errs[3] = getFloat(params, "mortgage_rate")
		in.TermYears, errs[4] = getInt(params, "mortgage_term_years")
		in.YearsToSimulate, errs[5] = getInt(params, "years_to_simulate")
		in.FirstYearCosts, errs[6] = getFloat(params, "first_year_costs")
		in.InflationRate, errs[7] = getFloat(params, "inflation_rate")
		in.ExtraMonthlyPayment, errs[8] = getFloatOr(params, "extra_monthly_payment", 0)
		in.AnnualIncome, errs[9] = getFloatOr(params, "annual_income", 0)
		if err := firstError(errs[:]...); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("house_price", in.HousePrice),
			attribute.Float64("deposit", in.Deposit),
			attribute.Float64("mortgage_rate", in.MortgageRate),
			attribute.Int("years_to_simulate", in.YearsToSimulate),
		)

		if err := firstError(
			validators.CheckHousePrice(cfg, in.HousePrice),
			validators.CheckDeposit(cfg, in.Deposit, in.HousePrice),
			validators.CheckRate(cfg, "house_growth_rate", in.HouseGrowthRate),
			validators.CheckRate(cfg, "mortgage_rate", in.MortgageRate),
			validators.CheckTermYears(cfg, in.TermYears),
			validators.CheckYears(cfg, in.YearsToSimulate),
			validators.CheckAmount(cfg, "first_year_costs", in.FirstYearCosts),
			validators.CheckInflationRate(cfg, in.InflationRate),
			validators.CheckAmount(cfg, "extra_monthly_payment", in.ExtraMonthlyPayment),
			validators.CheckAmount(cfg, "annual_income", in.AnnualIncome),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.SimulateHome(in)
		if err != nil {
			return nil, call.failed(err)
		}

		last := result.Years - 1
		call.succeeded(
			attribute.Float64("loan_amount", result.Mortgage.LoanAmount),
			attribute.Float64("final_equity", result.Equities[last]),
		)
		return result, nil
	}
}

// GrowthRatesResult - кривая годовой доходности актива
type GrowthRatesResult struct {
	GrowthRates []float64 `json:"growth_rates"`
}

// GenerateGrowthRatesHandler обрабатывает запрос на построение кривой доходности
func GenerateGrowthRatesHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "generate_growth_rates")
		defer call.end()

		initial, err1 := getFloat(params, "growth_initial")
		final, err2 := getFloat(params, "growth_final")
		years, err3 := getInt(params, "years")
		if err := firstError(err1, err2, err3); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("growth_initial", initial),
			attribute.Float64("growth_final", final),
			attribute.Int("years", years),
		)

		if err := firstError(
			validators.CheckGrowthRate(cfg, "growth_initial", initial),
			validators.CheckGrowthRate(cfg, "growth_final", final),
			validators.CheckYears(cfg, years),
		); err != nil {
			return nil, call.invalid(err)
		}

		rates, err := calculations.GenerateGrowthRates(initial, final, years)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded()
		return &GrowthRatesResult{GrowthRates: rates}, nil
	}
}

// assetInputFromParams извлекает и проверяет параметры моделирования актива.
// years необязателен и по умолчанию равен числу взносов.
func assetInputFromParams(cfg *config.Config, params map[string]interface{}) (calculations.AssetInput, error) {
	var in calculations.AssetInput
	var errs [5]error
	in.InitialInvestment, errs[0] = getFloat(params, "initial_investment")
	in.InitialPrice, errs[1] = getFloat(params, "initial_price")
	in.Contributions, errs[2] = getFloatSlice(params, "contributions")
	in.GrowthInitial, errs[3] = getFloat(params, "growth_initial")
	in.GrowthFinal, errs[4] = getFloat(params, "growth_final")
	if err := firstError(errs[:]...); err != nil {
		return in, err
	}
	years, err := getIntOr(params, "years", len(in.Contributions))
	if err != nil {
		return in, err
	}
	in.Years = years

	return in, firstError(
		validators.CheckAmount(cfg, "initial_investment", in.InitialInvestment),
		validators.ValidateNumber("initial_price", in.InitialPrice, 1e-9, cfg.MaxAmount),
		validators.CheckGrowthRate(cfg, "growth_initial", in.GrowthInitial),
		validators.CheckGrowthRate(cfg, "growth_final", in.GrowthFinal),
		validators.CheckYears(cfg, in.Years),
		validators.CheckContributions(cfg, in.Contributions, in.Years),
	)
}

// SimulateAssetHandler обрабатывает запрос на моделирование инвестиций в актив
func SimulateAssetHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "simulate_asset")
		defer call.end()

		in, err := assetInputFromParams(cfg, params)
		call.span.SetAttributes(
			attribute.Float64("initial_investment", in.InitialInvestment),
			attribute.Float64("initial_price", in.InitialPrice),
			attribute.Int("years", in.Years),
		)
		if err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.SimulateAsset(cfg, in)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(attribute.Float64("final_value", result.Values[result.Years-1]))
		return result, nil
	}
}

// TaxResult - результат моделирования актива с учетом CGT
type TaxResult struct {
	Asset          *calculations.AssetResult `json:"asset"`
	AfterTaxValues []float64                 `json:"after_tax_values"`
	TaxPayable     []float64                 `json:"tax_payable"`
}

// AdjustForTaxHandler моделирует актив и применяет налог на прирост капитала
func AdjustForTaxHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "adjust_for_tax")
		defer call.end()

		in, err := assetInputFromParams(cfg, params)
		if err != nil {
			return nil, call.invalid(err)
		}
		cgtRate, err := getFloat(params, "cgt_rate")
		if err == nil {
			err = validators.CheckCGTRate(cgtRate)
		}
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("cgt_rate", cgtRate),
			attribute.Int("years", in.Years),
		)

		asset, err := calculations.SimulateAsset(cfg, in)
		if err != nil {
			return nil, call.failed(err)
		}
		afterTax, err := calculations.AdjustForTax(asset, asset.Ledger, cgtRate)
		if err != nil {
			return nil, call.failed(err)
		}

		tax := make([]float64, len(afterTax))
		for i := range afterTax {
			tax[i] = asset.Values[i] - afterTax[i]
		}

		call.succeeded(attribute.Float64("final_after_tax", afterTax[len(afterTax)-1]))
		return &TaxResult{Asset: asset, AfterTaxValues: afterTax, TaxPayable: tax}, nil
	}
}

// InflationResult - реальные значения в ценах первого года
type InflationResult struct {
	RealValue  *float64  `json:"real_value,omitempty"`
	RealValues []float64 `json:"real_values,omitempty"`
}

// AdjustForInflationHandler приводит одно значение (value, year) или ряд
// (values, индекс i - год i+1) к ценам первого года
func AdjustForInflationHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "adjust_for_inflation")
		defer call.end()

		rate, err := getFloat(params, "inflation_rate")
		if err == nil {
			err = validators.CheckInflationRate(cfg, rate)
		}
		if err != nil {
			return nil, call.invalid(err)
		}
		call.span.SetAttributes(attribute.Float64("inflation_rate", rate))

		if _, ok := params["values"]; ok {
			values, err := getFloatSlice(params, "values")
			if err != nil {
				return nil, call.invalid(err)
			}
			adjusted, err := calculations.AdjustSeriesForInflation(values, rate)
			if err != nil {
				return nil, call.failed(err)
			}
			call.succeeded(attribute.Int("values", len(values)))
			return &InflationResult{RealValues: adjusted}, nil
		}

		value, err1 := getFloat(params, "value")
		year, err2 := getInt(params, "year")
		if err := firstError(err1, err2); err != nil {
			return nil, call.invalid(err)
		}
		if err := validators.ValidateNumber("value", value, -cfg.MaxAmount, cfg.MaxAmount); err != nil {
			return nil, call.invalid(err)
		}

		adjusted, err := calculations.AdjustForInflation(value, rate, year)
		if err != nil {
			return nil, call.failed(err)
		}
		call.succeeded(attribute.Int("year", year))
		return &InflationResult{RealValue: &adjusted}, nil
	}
}

// CompareStrategiesHandler прогоняет полный сценарий и сравнивает стратегии.
// Отсутствующие параметры берутся из сценария по умолчанию.
func CompareStrategiesHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := startCall(ctx, tracer, "compare_strategies")
		defer call.end()

		s, err := scenario.FromMap(params)
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("house_price", s.HousePrice),
			attribute.Float64("deposit", s.Deposit),
			attribute.Float64("cgt_rate", s.CGTRate),
			attribute.Int("years_to_simulate", s.YearsToSimulate),
		)

		if err := validators.CheckScenario(cfg, s); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.RunScenario(cfg, s)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.String("winner", string(result.Comparison.Winner)),
			attribute.Float64("final_real_home_equity", result.Comparison.FinalRealHomeEquity),
			attribute.Float64("final_real_asset_value", result.Comparison.FinalRealAssetValue),
		)
		return result, nil
	}
}
