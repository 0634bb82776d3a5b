// Package scenario загружает параметры прогона из YAML-файла или из
// параметров инструмента и подставляет значения по умолчанию.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

// Params - параметры сценария в том виде, в каком они записаны в файле
type Params struct {
	HousePrice          float64 `yaml:"house_price" json:"house_price" validate:"gt=0"`
	Deposit             float64 `yaml:"deposit" json:"deposit" validate:"gte=0,ltefield=HousePrice"`
	MortgageRate        float64 `yaml:"mortgage_rate" json:"mortgage_rate" validate:"gte=0"`
	MortgageTermYears   int     `yaml:"mortgage_term_years" json:"mortgage_term_years" validate:"gte=1"`
	AnnualIncome        float64 `yaml:"annual_income" json:"annual_income" validate:"gte=0"`
	HouseGrowthRate     float64 `yaml:"house_growth_rate" json:"house_growth_rate" validate:"gte=0"`
	FirstYearCosts      float64 `yaml:"first_year_costs" json:"first_year_costs" validate:"gte=0"`
	InflationRate       float64 `yaml:"inflation_rate" json:"inflation_rate" validate:"gt=-1"`
	CGTRate             float64 `yaml:"cgt_rate" json:"cgt_rate" validate:"gte=0,lte=1"`
	AssetGrowthInitial  float64 `yaml:"asset_growth_initial" json:"asset_growth_initial" validate:"gt=-1"`
	AssetGrowthFinal    float64 `yaml:"asset_growth_final" json:"asset_growth_final" validate:"gt=-1"`
	InitialAssetPrice   float64 `yaml:"initial_asset_price" json:"initial_asset_price" validate:"gt=0"`
	YearsToSimulate     int     `yaml:"years_to_simulate" json:"years_to_simulate" validate:"gte=1"`
	ExtraMonthlyPayment float64 `yaml:"extra_monthly_payment" json:"extra_monthly_payment" validate:"gte=0"`
}

// Default возвращает базовый сценарий
func Default() Params {
	return Params{
		HousePrice:         1000000,
		Deposit:            200000,
		MortgageRate:       0.055,
		MortgageTermYears:  30,
		AnnualIncome:       150000,
		HouseGrowthRate:    0.06,
		FirstYearCosts:     5000,
		InflationRate:      0.035,
		CGTRate:            0.20,
		AssetGrowthInitial: 0.25,
		AssetGrowthFinal:   0.05,
		InitialAssetPrice:  90000,
		YearsToSimulate:    15,
	}
}

// Scenario переводит параметры во входные данные расчета
func (p Params) Scenario() calculations.Scenario {
	return calculations.Scenario{
		HousePrice:          p.HousePrice,
		Deposit:             p.Deposit,
		MortgageRate:        p.MortgageRate,
		MortgageTermYears:   p.MortgageTermYears,
		AnnualIncome:        p.AnnualIncome,
		HouseGrowthRate:     p.HouseGrowthRate,
		FirstYearCosts:      p.FirstYearCosts,
		InflationRate:       p.InflationRate,
		CGTRate:             p.CGTRate,
		AssetGrowthInitial:  p.AssetGrowthInitial,
		AssetGrowthFinal:    p.AssetGrowthFinal,
		InitialAssetPrice:   p.InitialAssetPrice,
		YearsToSimulate:     p.YearsToSimulate,
		ExtraMonthlyPayment: p.ExtraMonthlyPayment,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В сообщениях используем имена ключей из файла
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate проверяет параметры и возвращает InvalidInput с первым нарушением
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.InvalidInput("%s: нарушено условие %s=%s (значение %v)",
			fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err)
}

// Parse читает YAML поверх значений по умолчанию. Неизвестные ключи - ошибка.
func Parse(data []byte) (calculations.Scenario, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return calculations.Scenario{}, apperrors.InvalidInput("scenario: некорректный YAML: %v", err)
	}
	if err := p.Validate(); err != nil {
		return calculations.Scenario{}, err
	}
	return p.Scenario(), nil
}

// Load читает сценарий из файла
func Load(path string) (calculations.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calculations.Scenario{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// FromMap строит сценарий из параметров инструмента поверх значений по умолчанию
func FromMap(params map[string]interface{}) (calculations.Scenario, error) {
	p := Default()
	raw, err := json.Marshal(params)
	if err != nil {
		return calculations.Scenario{}, apperrors.InvalidInput("scenario: параметры не сериализуются: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return calculations.Scenario{}, apperrors.InvalidInput("scenario: %v", err)
	}
	if err := p.Validate(); err != nil {
		return calculations.Scenario{}, err
	}
	return p.Scenario(), nil
}
