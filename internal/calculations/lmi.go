package calculations

import (
	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

// lmiBands - ступени страховки кредитора по LVR (верхняя граница включительно)
var lmiBands = []struct {
	maxLVR float64
	rate   float64
}{
	{0.80, 0.0},
	{0.85, 0.005},
	{0.90, 0.01},
	{0.95, 0.02},
}

const lmiTopRate = 0.03

// LendersInsurance рассчитывает разовую страховку кредитора (LMI) по отношению
// суммы кредита к стоимости жилья
func LendersInsurance(loanAmount, propertyValue float64) (float64, error) {
	if propertyValue <= 0 {
		return 0, apperrors.InvalidInput("house_price: стоимость жилья должна быть > 0")
	}
	if loanAmount < 0 {
		return 0, apperrors.InvalidInput("loan_amount: сумма кредита не может быть отрицательной")
	}

	lvr := loanAmount / propertyValue
	for _, band := range lmiBands {
		if lvr <= band.maxLVR {
			return loanAmount * band.rate, nil
		}
	}
	return loanAmount * lmiTopRate, nil
}
