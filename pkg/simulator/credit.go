package simulator

// CreditLimits bounds the personal and business credit simulator.
type CreditLimits struct {
	MinAmount          float64 `json:"minAmount"`
	MaxAmount          float64 `json:"maxAmount"`
	MinMonths          int     `json:"minMonths"`
	MaxMonths          int     `json:"maxMonths"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
}

// DefaultCreditLimits are the bounds shown on the solution pages.
func DefaultCreditLimits() CreditLimits {
	return CreditLimits{
		MinAmount:          1000,
		MaxAmount:          500000,
		MinMonths:          6,
		MaxMonths:          60,
		MonthlyRatePercent: 1.99,
	}
}

// CreditRequest is a simulation input.
type CreditRequest struct {
	Amount float64 `json:"amount"`
	Months int     `json:"months"`
}

// CreditResult is a Price schedule summary.
type CreditResult struct {
	Amount             float64 `json:"amount"`
	Months             int     `json:"months"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
	Instalment         float64 `json:"instalment"`
	Total              float64 `json:"total"`
	Interest           float64 `json:"interest"`
}

// SimulateCredit computes the fixed instalment, total paid and total interest
// for req under limits.
func SimulateCredit(limits CreditLimits, req CreditRequest) (CreditResult, error) {
	if req.Amount < limits.MinAmount || req.Amount > limits.MaxAmount {
		return CreditResult{}, outOfRange("amount", req.Amount, limits.MinAmount, limits.MaxAmount)
	}
	if req.Months < limits.MinMonths || req.Months > limits.MaxMonths {
		return CreditResult{}, outOfRange("months", float64(req.Months), float64(limits.MinMonths), float64(limits.MaxMonths))
	}

	instalment := Price(req.Amount, limits.MonthlyRatePercent/100, req.Months)
	total := instalment * float64(req.Months)
	return CreditResult{
		Amount:             req.Amount,
		Months:             req.Months,
		MonthlyRatePercent: limits.MonthlyRatePercent,
		Instalment:         Round2(instalment),
		Total:              Round2(total),
		Interest:           Round2(total - req.Amount),
	}, nil
}
