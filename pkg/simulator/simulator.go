package simulator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned when an input falls outside the simulator bounds.
var ErrOutOfRange = errors.New("simulator: value out of range")

// Price returns the fixed instalment of a French amortisation schedule.
func Price(principal, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+monthlyRate, float64(months))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func outOfRange(field string, value, min, max float64) error {
	return fmt.Errorf("%w: %s %s outside [%s, %s]", ErrOutOfRange, field,
		strconv.FormatFloat(value, 'f', -1, 64),
		strconv.FormatFloat(min, 'f', -1, 64),
		strconv.FormatFloat(max, 'f', -1, 64))
}

// FormatBRL formats v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatBRL(v float64) string {
	negative := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if negative && cents != 0 {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents%100)
}
