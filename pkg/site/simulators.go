package site

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/atoshub/go-site/pkg/simulator"
)

// Defaults shown on the simulators page before the visitor changes anything.
var (
	defaultCreditRequest = simulator.CreditRequest{Amount: 50000, Months: 24}

	defaultMortgageRequest = simulator.MortgageRequest{
		PropertyValue: 400000,
		DownPayment:   80000,
		Years:         30,
		System:        simulator.SystemSAC,
	}
)

var errBadNumber = errors.New("parâmetro numérico inválido")

func parseFloat(q url.Values, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadNumber, name)
	}
	return v, nil
}

func parseInt(q url.Values, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadNumber, name)
	}
	return v, nil
}

// parseCreditRequest reads amount and months from the query, keeping the
// fallback for absent parameters.
func parseCreditRequest(r *http.Request, fallback simulator.CreditRequest) (simulator.CreditRequest, error) {
	q := r.URL.Query()
	amount, err := parseFloat(q, "amount", fallback.Amount)
	if err != nil {
		return simulator.CreditRequest{}, err
	}
	months, err := parseInt(q, "months", fallback.Months)
	if err != nil {
		return simulator.CreditRequest{}, err
	}
	return simulator.CreditRequest{Amount: amount, Months: months}, nil
}

func parseMortgageRequest(r *http.Request, fallback simulator.MortgageRequest) (simulator.MortgageRequest, error) {
	q := r.URL.Query()
	value, err := parseFloat(q, "propertyValue", fallback.PropertyValue)
	if err != nil {
		return simulator.MortgageRequest{}, err
	}
	down, err := parseFloat(q, "downPayment", fallback.DownPayment)
	if err != nil {
		return simulator.MortgageRequest{}, err
	}
	years, err := parseInt(q, "years", fallback.Years)
	if err != nil {
		return simulator.MortgageRequest{}, err
	}
	system := fallback.System
	if raw := q.Get("system"); raw != "" {
		if system, err = simulator.ParseSystem(raw); err != nil {
			return simulator.MortgageRequest{}, err
		}
	}
	return simulator.MortgageRequest{PropertyValue: value, DownPayment: down, Years: years, System: system}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func creditFormValues(req simulator.CreditRequest, limits simulator.CreditLimits) map[string]string {
	return map[string]string{
		"amount":    formatNumber(req.Amount),
		"months":    strconv.Itoa(req.Months),
		"minAmount": formatNumber(limits.MinAmount),
		"maxAmount": formatNumber(limits.MaxAmount),
		"minMonths": strconv.Itoa(limits.MinMonths),
		"maxMonths": strconv.Itoa(limits.MaxMonths),
		"rate":      strings.ReplaceAll(formatNumber(limits.MonthlyRatePercent), ".", ","),
	}
}

func mortgageFormValues(req simulator.MortgageRequest, limits simulator.MortgageLimits) map[string]string {
	return map[string]string{
		"propertyValue": formatNumber(req.PropertyValue),
		"downPayment":   formatNumber(req.DownPayment),
		"years":         strconv.Itoa(req.Years),
		"system":        string(req.System),
		"minYears":      strconv.Itoa(limits.MinYears),
		"maxYears":      strconv.Itoa(limits.MaxYears),
		"rate":          strings.ReplaceAll(formatNumber(limits.MonthlyRatePercent), ".", ","),
	}
}

// handleSimulators renders both simulators. Out of range inputs show the
// error next to the form instead of failing the page. Numbers reach the
// template preformatted.
func (s *Server) handleSimulators(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	creditReq, err := parseCreditRequest(r, defaultCreditRequest)
	if err == nil {
		var result simulator.CreditResult
		if result, err = simulator.SimulateCredit(s.credit, creditReq); err == nil {
			data["credit"] = result
		}
	}
	if err != nil {
		data["creditError"] = "Valores fora dos limites do simulador."
		creditReq = defaultCreditRequest
	}
	data["creditForm"] = creditFormValues(creditReq, s.credit)

	mortgageReq, err := parseMortgageRequest(r, defaultMortgageRequest)
	if err == nil {
		var result simulator.MortgageResult
		if result, err = simulator.SimulateMortgage(s.mortgage, mortgageReq); err == nil {
			data["mortgage"] = result
		}
	}
	if err != nil {
		data["mortgageError"] = "Valores fora dos limites do simulador."
		mortgageReq = defaultMortgageRequest
	}
	data["mortgageForm"] = mortgageFormValues(mortgageReq, s.mortgage)

	s.renderPage(w, http.StatusOK, "pages.simulators", data)
}
