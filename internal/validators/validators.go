package validators

import (
	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/internal/config"
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/pkg/utils"
)

// ValidateNumber проверяет, что число конечно и лежит в [minInclusive; maxInclusive]
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return apperrors.InvalidInput("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return apperrors.InvalidInput("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return apperrors.InvalidInput("%s: значение слишком велико (>%g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return apperrors.InvalidInput("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckHousePrice проверяет цену жилья
func CheckHousePrice(cfg *config.Config, price float64) error {
	return ValidateNumber("house_price", price, 1e-9, cfg.MaxHousePrice)
}

// CheckDeposit проверяет первоначальный взнос: от 0 до цены жилья
func CheckDeposit(cfg *config.Config, deposit, housePrice float64) error {
	if err := ValidateNumber("deposit", deposit, 0, cfg.MaxHousePrice); err != nil {
		return err
	}
	if deposit > housePrice {
		return apperrors.InvalidInput("deposit: взнос %g больше цены жилья %g", deposit, housePrice)
	}
	return nil
}

// CheckAmount проверяет неотрицательную сумму (доход, расходы, взнос)
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidateNumber(name, amount, 0, cfg.MaxAmount)
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateNumber("principal", principal, 1e-9, cfg.MaxHousePrice)
}

// CheckRate проверяет неотрицательную годовую ставку (десятичная дробь)
func CheckRate(cfg *config.Config, name string, rate float64) error {
	return ValidateNumber(name, rate, 0, cfg.MaxRate)
}

// CheckGrowthRate проверяет доходность актива, которая может быть отрицательной,
// но не ниже -100%
func CheckGrowthRate(cfg *config.Config, name string, rate float64) error {
	if err := ValidateNumber(name, rate, -cfg.MaxRate, cfg.MaxRate); err != nil {
		return err
	}
	if rate <= -1 {
		return apperrors.InvalidInput("%s: доходность должна быть > -100%%", name)
	}
	return nil
}

// CheckInflationRate проверяет инфляцию: конечна и > -100%
func CheckInflationRate(cfg *config.Config, rate float64) error {
	return CheckGrowthRate(cfg, "inflation_rate", rate)
}

// CheckCGTRate проверяет ставку налога на прирост капитала
func CheckCGTRate(rate float64) error {
	return ValidateNumber("cgt_rate", rate, 0, 1)
}

// CheckTermYears проверяет срок ипотеки в годах
func CheckTermYears(cfg *config.Config, years int) error {
	return ValidateIntRange("mortgage_term_years", years, 1, cfg.MaxTermYears)
}

// CheckYears проверяет горизонт моделирования
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years_to_simulate", years, 1, cfg.MaxYears)
}

// CheckContributions проверяет ряд ежегодных взносов
func CheckContributions(cfg *config.Config, contributions []float64, years int) error {
	if len(contributions) != years {
		return apperrors.InvalidInput("contributions: ожидалось %d взносов, получено %d", years, len(contributions))
	}
	for _, c := range contributions {
		if err := CheckAmount(cfg, "contributions", c); err != nil {
			return err
		}
	}
	return nil
}

// CheckScenario проверяет сценарий целиком против ограничений конфигурации
func CheckScenario(cfg *config.Config, s calculations.Scenario) error {
	checks := []error{
		CheckHousePrice(cfg, s.HousePrice),
		CheckDeposit(cfg, s.Deposit, s.HousePrice),
		CheckRate(cfg, "mortgage_rate", s.MortgageRate),
		CheckTermYears(cfg, s.MortgageTermYears),
		CheckAmount(cfg, "annual_income", s.AnnualIncome),
		CheckRate(cfg, "house_growth_rate", s.HouseGrowthRate),
		CheckAmount(cfg, "first_year_costs", s.FirstYearCosts),
		CheckInflationRate(cfg, s.InflationRate),
		CheckCGTRate(s.CGTRate),
		CheckGrowthRate(cfg, "asset_growth_initial", s.AssetGrowthInitial),
		CheckGrowthRate(cfg, "asset_growth_final", s.AssetGrowthFinal),
		CheckAmount(cfg, "initial_asset_price", s.InitialAssetPrice),
		CheckYears(cfg, s.YearsToSimulate),
		CheckAmount(cfg, "extra_monthly_payment", s.ExtraMonthlyPayment),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if s.InitialAssetPrice <= 0 {
		return apperrors.InvalidInput("initial_asset_price: начальная цена актива должна быть > 0")
	}
	return nil
}
