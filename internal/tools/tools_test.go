package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/internal/config"
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return NewRegistry(cfg, noop.NewTracerProvider().Tracer("test"))
}

func TestRegistry_List(t *testing.T) {
	r := newTestRegistry(t)

	var names []string
	for _, tool := range r.List() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Equal(t, []string{
		"adjust_for_inflation",
		"adjust_for_tax",
		"amortize",
		"compare_strategies",
		"generate_growth_rates",
		"simulate_asset",
		"simulate_home",
	}, names)
}

func TestRegistry_UnknownTool(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Call(context.Background(), "loan_schedule_annuity", nil)
	assert.True(t, errors.Is(err, apperrors.ErrToolNotFound))
}

func TestAmortizeTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Call(context.Background(), "amortize", map[string]interface{}{
		"principal":   100000.0,
		"annual_rate": 0.05,
		"term_years":  30.0,
		"years":       5.0,
	})
	require.NoError(t, err)

	res, ok := out.(*AmortizeResult)
	require.True(t, ok)
	assert.InDelta(t, 536.82, res.Schedule.MonthlyPayment, 0.01)
	assert.Len(t, res.Schedule.Entries, 360)
	assert.Len(t, res.Annual, 5)
}

func TestGenerateGrowthRatesTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Call(context.Background(), "generate_growth_rates", map[string]interface{}{
		"growth_initial": 0.25,
		"growth_final":   0.05,
		"years":          2,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.05}, out.(*GrowthRatesResult).GrowthRates)
}

func TestAdjustForTaxTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Call(context.Background(), "adjust_for_tax", map[string]interface{}{
		"initial_investment": 1000.0,
		"initial_price":      100.0,
		"contributions":      []interface{}{0.0, 0.0},
		"growth_initial":     1.0,
		"growth_final":       1.0,
		"cgt_rate":           0.2,
	})
	require.NoError(t, err)

	res := out.(*TaxResult)
	assert.Equal(t, 2, res.Asset.Years)
	assert.InDeltaSlice(t, []float64{1800, 3700}, res.AfterTaxValues, 1e-9)
	assert.InDeltaSlice(t, []float64{200, 300}, res.TaxPayable, 1e-9)
}

func TestAdjustForInflationTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Call(context.Background(), "adjust_for_inflation", map[string]interface{}{
		"inflation_rate": 0.1,
		"value":          1210.0,
		"year":           3.0,
	})
	require.NoError(t, err)
	res := out.(*InflationResult)
	require.NotNil(t, res.RealValue)
	assert.InDelta(t, 1000, *res.RealValue, 1e-9)

	out, err = r.Call(context.Background(), "adjust_for_inflation", map[string]interface{}{
		"inflation_rate": 0.0,
		"values":         []interface{}{5.0, 6.0},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, out.(*InflationResult).RealValues)
}

func TestCompareStrategiesTool(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.Call(context.Background(), "compare_strategies", map[string]interface{}{
		"years_to_simulate": 10.0,
	})
	require.NoError(t, err)

	res := out.(*calculations.ScenarioResult)
	assert.Equal(t, 10, res.Comparison.Years)
	assert.Equal(t, 1000000.0, res.Scenario.HousePrice)
}

func TestTools_InvalidInput(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name   string
		tool   string
		params map[string]interface{}
	}{
		{"missing principal", "amortize", map[string]interface{}{"annual_rate": 0.05, "term_years": 30.0}},
		{"fractional term", "amortize", map[string]interface{}{"principal": 1000.0, "annual_rate": 0.05, "term_years": 2.5}},
		{"string rate", "amortize", map[string]interface{}{"principal": 1000.0, "annual_rate": "5%", "term_years": 30.0}},
		{"deposit above price", "simulate_home", map[string]interface{}{
			"house_price": 100.0, "deposit": 200.0, "house_growth_rate": 0.05, "mortgage_rate": 0.05,
			"mortgage_term_years": 30.0, "years_to_simulate": 10.0, "first_year_costs": 0.0, "inflation_rate": 0.02,
		}},
		{"contributions not numbers", "simulate_asset", map[string]interface{}{
			"initial_investment": 1.0, "initial_price": 1.0, "contributions": []interface{}{"x"},
			"growth_initial": 0.1, "growth_final": 0.1,
		}},
		{"horizon mismatch", "simulate_asset", map[string]interface{}{
			"initial_investment": 1.0, "initial_price": 1.0, "contributions": []interface{}{1.0},
			"growth_initial": 0.1, "growth_final": 0.1, "years": 3.0,
		}},
		{"cgt above one", "compare_strategies", map[string]interface{}{"cgt_rate": 1.5}},
		{"inflation at -100%", "adjust_for_inflation", map[string]interface{}{"inflation_rate": -1.0, "value": 1.0, "year": 1.0}},
		{"year zero", "adjust_for_inflation", map[string]interface{}{"inflation_rate": 0.02, "value": 1.0, "year": 0.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Call(context.Background(), tt.tool, tt.params)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
}
