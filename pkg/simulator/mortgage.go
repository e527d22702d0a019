package simulator

import (
	"fmt"
	"strings"
)

// System is the amortisation system of a mortgage.
type System string

const (
	SystemSAC   System = "sac"
	SystemPrice System = "price"
)

// ParseSystem resolves an amortisation system, defaulting to SAC.
func ParseSystem(raw string) (System, error) {
	switch s := System(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SystemSAC, nil
	case SystemSAC, SystemPrice:
		return s, nil
	default:
		return "", fmt.Errorf("%w: system %q", ErrOutOfRange, raw)
	}
}

// MortgageLimits bounds the mortgage simulator.
type MortgageLimits struct {
	MinPropertyValue   float64 `json:"minPropertyValue"`
	MaxPropertyValue   float64 `json:"maxPropertyValue"`
	MinDownPayment     float64 `json:"minDownPaymentRatio"`
	MaxDownPayment     float64 `json:"maxDownPaymentRatio"`
	MinYears           int     `json:"minYears"`
	MaxYears           int     `json:"maxYears"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
}

// DefaultMortgageLimits are the bounds of the real estate credit page.
func DefaultMortgageLimits() MortgageLimits {
	return MortgageLimits{
		MinPropertyValue:   100000,
		MaxPropertyValue:   2000000,
		MinDownPayment:     0.10,
		MaxDownPayment:     0.80,
		MinYears:           5,
		MaxYears:           35,
		MonthlyRatePercent: 0.95,
	}
}

// MortgageRequest is a simulation input.
type MortgageRequest struct {
	PropertyValue float64 `json:"propertyValue"`
	DownPayment   float64 `json:"downPayment"`
	Years         int     `json:"years"`
	System        System  `json:"system"`
}

// MortgageResult summarises a mortgage schedule. For SAC, FirstInstalment
// and LastInstalment differ; for Price they are equal.
type MortgageResult struct {
	System             System  `json:"system"`
	Loan               float64 `json:"loan"`
	Months             int     `json:"months"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
	FirstInstalment    float64 `json:"firstInstalment"`
	LastInstalment     float64 `json:"lastInstalment"`
	Total              float64 `json:"total"`
	Interest           float64 `json:"interest"`
}

// SimulateMortgage computes the first instalment and totals of req.
func SimulateMortgage(limits MortgageLimits, req MortgageRequest) (MortgageResult, error) {
	if req.PropertyValue < limits.MinPropertyValue || req.PropertyValue > limits.MaxPropertyValue {
		return MortgageResult{}, outOfRange("propertyValue", req.PropertyValue, limits.MinPropertyValue, limits.MaxPropertyValue)
	}
	minDown := req.PropertyValue * limits.MinDownPayment
	maxDown := req.PropertyValue * limits.MaxDownPayment
	if req.DownPayment < minDown || req.DownPayment > maxDown {
		return MortgageResult{}, outOfRange("downPayment", req.DownPayment, minDown, maxDown)
	}
	if req.Years < limits.MinYears || req.Years > limits.MaxYears {
		return MortgageResult{}, outOfRange("years", float64(req.Years), float64(limits.MinYears), float64(limits.MaxYears))
	}
	system := req.System
	if system == "" {
		system = SystemSAC
	}

	loan := req.PropertyValue - req.DownPayment
	rate := limits.MonthlyRatePercent / 100
	months := req.Years * 12

	result := MortgageResult{
		System:             system,
		Loan:               Round2(loan),
		Months:             months,
		DownPaymentPercent: Round2(req.DownPayment / req.PropertyValue * 100),
		MonthlyRatePercent: limits.MonthlyRatePercent,
	}

	switch system {
	case SystemPrice:
		instalment := Price(loan, rate, months)
		total := instalment * float64(months)
		result.FirstInstalment = Round2(instalment)
		result.LastInstalment = Round2(instalment)
		result.Total = Round2(total)
		result.Interest = Round2(total - loan)
	case SystemSAC:
		amortisation := loan / float64(months)
		interest := loan * rate * float64(months+1) / 2
		result.FirstInstalment = Round2(amortisation + loan*rate)
		result.LastInstalment = Round2(amortisation + amortisation*rate)
		result.Total = Round2(loan + interest)
		result.Interest = Round2(interest)
	default:
		return MortgageResult{}, fmt.Errorf("%w: system %q", ErrOutOfRange, system)
	}
	return result, nil
}
