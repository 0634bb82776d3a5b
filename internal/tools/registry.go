package tools

import (
	"context"
	"sort"

	"github.com/cloud-ru/mcp-wealth-sim/internal/config"
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"go.opentelemetry.io/otel/trace"
)

// Tool описывает зарегистрированный инструмент
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

// Registry хранит инструменты по имени
type Registry struct {
	tools map[string]Tool
}

// NewRegistry регистрирует все инструменты симулятора
func NewRegistry(cfg *config.Config, tracer trace.Tracer) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.register("amortize", "График погашения ипотеки с досрочными платежами", AmortizeHandler(cfg, tracer))
	r.register("simulate_home", "Моделирование покупки жилья: стоимость, долг, капитал", SimulateHomeHandler(cfg, tracer))
	r.register("generate_growth_rates", "Убывающая кривая годовой доходности актива", GenerateGrowthRatesHandler(cfg, tracer))
	r.register("simulate_asset", "Моделирование ежегодных покупок актива", SimulateAssetHandler(cfg, tracer))
	r.register("adjust_for_tax", "Стоимость актива после налога на прирост капитала", AdjustForTaxHandler(cfg, tracer))
	r.register("adjust_for_inflation", "Приведение сумм к ценам первого года", AdjustForInflationHandler(cfg, tracer))
	r.register("compare_strategies", "Полный сценарий: жилье против актива", CompareStrategiesHandler(cfg, tracer))
	return r
}

func (r *Registry) register(name, description string, h ToolHandler) {
	r.tools[name] = Tool{Name: name, Description: description, Handler: h}
}

// List возвращает инструменты, отсортированные по имени
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call вызывает инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrToolNotFound, "tool not found: "+name)
	}
	return t.Handler(ctx, params)
}
