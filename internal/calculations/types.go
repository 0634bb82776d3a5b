package calculations

// LoanTerms описывает условия кредита (сумма уже включает страховку LMI)
type LoanTerms struct {
	Principal    float64 `json:"principal"`
	AnnualRate   float64 `json:"annual_rate"`
	TermYears    int     `json:"term_years"`
	ExtraMonthly float64 `json:"extra_monthly"`
}

// AmortizationEntry представляет один месячный платеж
type AmortizationEntry struct {
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule представляет полный график погашения
type AmortizationSchedule struct {
	Terms          LoanTerms           `json:"terms"`
	MonthlyPayment float64             `json:"monthly_payment"`
	TotalInterest  float64             `json:"total_interest"`
	TotalPaid      float64             `json:"total_paid"`
	PayoffMonth    int                 `json:"payoff_month"`
	Entries        []AmortizationEntry `json:"entries"`
}

// AnnualAggregate представляет годовые итоги графика
type AnnualAggregate struct {
	Year       int     `json:"year"`
	Interest   float64 `json:"interest"`
	Principal  float64 `json:"principal"`
	EndBalance float64 `json:"end_balance"`
}

// HomeInput содержит параметры покупки дома
type HomeInput struct {
	HousePrice          float64 `json:"house_price"`
	Deposit             float64 `json:"deposit"`
	HouseGrowthRate     float64 `json:"house_growth_rate"`
	MortgageRate        float64 `json:"mortgage_rate"`
	TermYears           int     `json:"term_years"`
	YearsToSimulate     int     `json:"years_to_simulate"`
	FirstYearCosts      float64 `json:"first_year_costs"`
	InflationRate       float64 `json:"inflation_rate"`
	ExtraMonthlyPayment float64 `json:"extra_monthly_payment,omitempty"`
	// AnnualIncome необязателен: 0 отключает расчет доступности
	AnnualIncome float64 `json:"annual_income,omitempty"`
}

// MortgageSummary представляет сводку по ипотеке
type MortgageSummary struct {
	BaseLoanAmount         float64 `json:"base_loan_amount"`
	LVR                    float64 `json:"lvr"`
	InsuranceCost          float64 `json:"insurance_cost"`
	LoanAmount             float64 `json:"loan_amount"`
	MonthlyPayment         float64 `json:"monthly_payment"`
	WeeklyPayment          float64 `json:"weekly_payment"`
	MeanWeeklyInterest     float64 `json:"mean_weekly_interest"`
	MeanWeeklyPrincipal    float64 `json:"mean_weekly_principal"`
	TotalInterest          float64 `json:"total_interest"`
	PayoffMonth            int     `json:"payoff_month"`
	MonthlyIncome          float64 `json:"monthly_income,omitempty"`
	MonthlySurplus         float64 `json:"monthly_surplus,omitempty"`
	AffordabilityEvaluated bool    `json:"affordability_evaluated"`
	Affordable             bool    `json:"affordable"`
}

// HomeResult содержит годовые ряды сценария покупки дома
type HomeResult struct {
	Years              int                   `json:"years"`
	Mortgage           MortgageSummary       `json:"mortgage"`
	HouseValues        []float64             `json:"house_values"`
	MortgageBalances   []float64             `json:"mortgage_balances"`
	Equities           []float64             `json:"equities"`
	AnnualInterest     []float64             `json:"annual_interest"`
	AnnualPrincipal    []float64             `json:"annual_principal"`
	AnnualCosts        []float64             `json:"annual_costs"`
	CumulativeInvested []float64             `json:"cumulative_invested"`
	Schedule           *AmortizationSchedule `json:"schedule,omitempty"`
}

// ContributionRecord фиксирует один взнос и год, в котором он сделан
type ContributionRecord struct {
	Amount float64 `json:"amount"`
	Year   int     `json:"year"`
}

// Ledger - упорядоченный журнал взносов; начальная сумма записана в год 0
type Ledger []ContributionRecord

// AssetInput содержит параметры инвестиций в альтернативный актив
type AssetInput struct {
	InitialInvestment float64   `json:"initial_investment"`
	InitialPrice      float64   `json:"initial_price"`
	Contributions     []float64 `json:"contributions"`
	GrowthInitial     float64   `json:"growth_initial"`
	GrowthFinal       float64   `json:"growth_final"`
	Years             int       `json:"years"`
}

// AssetResult содержит годовые ряды сценария инвестиций в актив
type AssetResult struct {
	Years              int       `json:"years"`
	InitialPrice       float64   `json:"initial_price"`
	InitialInvestment  float64   `json:"initial_investment"`
	GrowthRates        []float64 `json:"growth_rates"`
	Prices             []float64 `json:"prices"`
	UnitsPurchased     []float64 `json:"units_purchased"`
	Holdings           []float64 `json:"holdings"`
	Values             []float64 `json:"values"`
	CumulativeInvested []float64 `json:"cumulative_invested"`
	Contributions      []float64 `json:"contributions"`
	Ledger             Ledger    `json:"ledger"`
}

// PriceAt возвращает цену актива в конце года; год 0 - начальная цена
func (r *AssetResult) PriceAt(year int) (float64, bool) {
	if year == 0 {
		return r.InitialPrice, true
	}
	if year < 0 || year > len(r.Prices) {
		return 0, false
	}
	return r.Prices[year-1], true
}

// RentResult описывает альтернативный сценарий аренды
type RentResult struct {
	InitialAnnualRent float64   `json:"initial_annual_rent"`
	AnnualRent        []float64 `json:"annual_rent"`
	CumulativeRent    []float64 `json:"cumulative_rent"`
}

// GrowthMetrics представляет метрики роста стратегии
type GrowthMetrics struct {
	ROIPercent              float64 `json:"roi_percent"`
	AnnualizedReturnPercent float64 `json:"annualized_return_percent"`
	CapitalGain             float64 `json:"capital_gain"`
	TotalInvested           float64 `json:"total_invested"`
	FinalValue              float64 `json:"final_value"`
	Years                   float64 `json:"years"`
}

// Strategy определяет стратегию-победителя
type Strategy string

const (
	StrategyHome  Strategy = "home"
	StrategyAsset Strategy = "asset"
)

// ComparisonResult представляет результат сравнения двух стратегий
type ComparisonResult struct {
	Years                  int           `json:"years"`
	RealHomeEquity         []float64     `json:"real_home_equity"`
	RealAssetValue         []float64     `json:"real_asset_value"`
	HomeNetGain            []float64     `json:"home_net_gain"`
	AssetNetGain           []float64     `json:"asset_net_gain"`
	NominalHomeNetGain     []float64     `json:"nominal_home_net_gain"`
	NominalAssetNetGain    []float64     `json:"nominal_asset_net_gain"`
	CumulativeHouseCosts   []float64     `json:"cumulative_house_costs"`
	HousePriceInAssetUnits []float64     `json:"house_price_in_asset_units"`
	FinalRealHomeEquity    float64       `json:"final_real_home_equity"`
	FinalRealAssetValue    float64       `json:"final_real_asset_value"`
	Winner                 Strategy      `json:"winner"`
	HomeMetrics            GrowthMetrics `json:"home_metrics"`
	AssetMetrics           GrowthMetrics `json:"asset_metrics"`
	ImpliedAssetMarketCap  float64       `json:"implied_asset_market_cap"`
}

// Scenario объединяет все параметры одного прогона
type Scenario struct {
	HousePrice          float64 `json:"house_price"`
	Deposit             float64 `json:"deposit"`
	MortgageRate        float64 `json:"mortgage_rate"`
	MortgageTermYears   int     `json:"mortgage_term_years"`
	AnnualIncome        float64 `json:"annual_income"`
	HouseGrowthRate     float64 `json:"house_growth_rate"`
	FirstYearCosts      float64 `json:"first_year_costs"`
	InflationRate       float64 `json:"inflation_rate"`
	CGTRate             float64 `json:"cgt_rate"`
	AssetGrowthInitial  float64 `json:"asset_growth_initial"`
	AssetGrowthFinal    float64 `json:"asset_growth_final"`
	InitialAssetPrice   float64 `json:"initial_asset_price"`
	YearsToSimulate     int     `json:"years_to_simulate"`
	ExtraMonthlyPayment float64 `json:"extra_monthly_payment"`
}

// ScenarioResult содержит результаты всего конвейера
type ScenarioResult struct {
	Scenario       Scenario          `json:"scenario"`
	Home           *HomeResult       `json:"home"`
	Asset          *AssetResult      `json:"asset"`
	AfterTaxValues []float64         `json:"after_tax_values"`
	Rent           *RentResult       `json:"rent"`
	Comparison     *ComparisonResult `json:"comparison"`
}
