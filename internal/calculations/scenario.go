package calculations

// RunScenario выполняет весь конвейер для одного набора параметров:
// ипотека → жилье → взносы в актив → актив → CGT → инфляция → сравнение.
// В актив изначально вкладывается тот же первоначальный взнос.
func RunScenario(cfg ConfigInterface, s Scenario) (*ScenarioResult, error) {
	home, err := SimulateHome(HomeInput{
		HousePrice:          s.HousePrice,
		Deposit:             s.Deposit,
		HouseGrowthRate:     s.HouseGrowthRate,
		MortgageRate:        s.MortgageRate,
		TermYears:           s.MortgageTermYears,
		YearsToSimulate:     s.YearsToSimulate,
		FirstYearCosts:      s.FirstYearCosts,
		InflationRate:       s.InflationRate,
		ExtraMonthlyPayment: s.ExtraMonthlyPayment,
		AnnualIncome:        s.AnnualIncome,
	})
	if err != nil {
		return nil, err
	}

	contributions, err := AnnualContributions(home.AnnualPrincipal, home.AnnualCosts)
	if err != nil {
		return nil, err
	}

	asset, err := SimulateAsset(cfg, AssetInput{
		InitialInvestment: s.Deposit,
		InitialPrice:      s.InitialAssetPrice,
		Contributions:     contributions,
		GrowthInitial:     s.AssetGrowthInitial,
		GrowthFinal:       s.AssetGrowthFinal,
		Years:             s.YearsToSimulate,
	})
	if err != nil {
		return nil, err
	}

	afterTax, err := AdjustForTax(asset, asset.Ledger, s.CGTRate)
	if err != nil {
		return nil, err
	}

	res := &ScenarioResult{
		Scenario:       s,
		Home:           home,
		Asset:          asset,
		AfterTaxValues: afterTax,
	}

	// Без ипотеки (взнос равен цене) аренда не моделируется.
	if home.Schedule != nil {
		res.Rent, err = RentEquivalent(home.AnnualInterest, s.InflationRate, s.YearsToSimulate)
		if err != nil {
			return nil, err
		}
	}

	res.Comparison, err = CompareStrategies(home, asset, afterTax, s.InflationRate)
	if err != nil {
		return nil, err
	}
	return res, nil
}
