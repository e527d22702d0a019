package mask

import "strings"

const (
	phoneDigits = 11
	cpfDigits   = 11
	cnpjDigits  = 14
)

// Func reformats raw keystrokes into a display mask. Implementations are
// total: they never fail and always return a best-effort partial mask.
type Func func(string) string

// Digits keeps the ASCII digits of s, in order.
func Digits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Phone renders up to 11 digits as "(DD) DDDD-DDDD" or, with a ninth
// subscriber digit, "(DD) DDDDD-DDDD".
func Phone(s string) string {
	d := truncate(Digits(s), phoneDigits)
	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case n <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// CPF renders up to 11 digits as "DDD.DDD.DDD-DD".
func CPF(s string) string {
	d := truncate(Digits(s), cpfDigits)
	switch n := len(d); {
	case n <= 3:
		return d
	case n <= 6:
		return d[:3] + "." + d[3:]
	case n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// CNPJ renders up to 14 digits as "DD.DDD.DDD/DDDD-DD".
func CNPJ(s string) string {
	d := truncate(Digits(s), cnpjDigits)
	switch n := len(d); {
	case n <= 2:
		return d
	case n <= 5:
		return d[:2] + "." + d[2:]
	case n <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	case n <= 12:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:]
	default:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	}
}

func truncate(d string, max int) string {
	if len(d) > max {
		return d[:max]
	}
	return d
}
