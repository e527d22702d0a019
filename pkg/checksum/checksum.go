// Package checksum implements the public check-digit algorithms of the
// Brazilian CPF (11 digits) and CNPJ (14 digits) registries.
package checksum

import (
	"errors"

	"github.com/atoshub/go-site/pkg/mask"
)

// ErrInvalidBase is returned when a check-digit base has the wrong length or
// contains non-digits.
var ErrInvalidBase = errors.New("checksum: invalid base")

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidCPF reports whether s, after stripping punctuation, is an 11 digit
// CPF whose two check digits match.
func ValidCPF(s string) bool {
	d := mask.Digits(s)
	if len(d) != 11 || repeated(d) {
		return false
	}
	return cpfDigit(d[:9]) == d[9] && cpfDigit(d[:10]) == d[10]
}

// ValidCNPJ reports whether s, after stripping punctuation, is a 14 digit
// CNPJ whose two check digits match.
func ValidCNPJ(s string) bool {
	d := mask.Digits(s)
	if len(d) != 14 || repeated(d) {
		return false
	}
	return cnpjDigit(d[:12], cnpjWeights1) == d[12] && cnpjDigit(d[:13], cnpjWeights2) == d[13]
}

// CPFCheckDigits returns the two check digits for a 9 digit CPF base.
func CPFCheckDigits(base string) (string, error) {
	if len(base) != 9 || !allDigits(base) {
		return "", ErrInvalidBase
	}
	first := cpfDigit(base)
	second := cpfDigit(base + string(first))
	return string([]byte{first, second}), nil
}

// CNPJCheckDigits returns the two check digits for a 12 digit CNPJ base.
func CNPJCheckDigits(base string) (string, error) {
	if len(base) != 12 || !allDigits(base) {
		return "", ErrInvalidBase
	}
	first := cnpjDigit(base, cnpjWeights1)
	second := cnpjDigit(base+string(first), cnpjWeights2)
	return string([]byte{first, second}), nil
}

// cpfDigit weights digits from len(d)+1 down to 2.
func cpfDigit(d string) byte {
	sum := 0
	weight := len(d) + 1
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * (weight - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	return byte('0' + r)
}

func cnpjDigit(d string, weights []int) byte {
	sum := 0
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
