package mask_test

import (
	"strings"
	"testing"

	"github.com/atoshub/go-site/pkg/mask"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"1", "(1"},
		{"11", "(11"},
		{"119", "(11) 9"},
		{"119876", "(11) 9876"},
		{"1198765", "(11) 9876-5"},
		{"1140004000", "(11) 4000-4000"},
		{"11987654321", "(11) 98765-4321"},
		{"119876543210000", "(11) 98765-4321"},
		{"(11) 98765-4321", "(11) 98765-4321"},
		{"+55 11", "(55) 11"},
	}
	for _, tc := range cases {
		if got := mask.Phone(tc.in); got != tc.want {
			t.Fatalf("Phone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCPF(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "123.4"},
		{"123456", "123.456"},
		{"1234567", "123.456.7"},
		{"123456789", "123.456.789"},
		{"1234567890", "123.456.789-0"},
		{"52998224725", "529.982.247-25"},
		{"529982247251234", "529.982.247-25"},
		{"529.982.247-25", "529.982.247-25"},
	}
	for _, tc := range cases {
		if got := mask.CPF(tc.in); got != tc.want {
			t.Fatalf("CPF(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCNPJ(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"11", "11"},
		{"112", "11.2"},
		{"11222", "11.222"},
		{"112223", "11.222.3"},
		{"11222333", "11.222.333"},
		{"112223330", "11.222.333/0"},
		{"112223330001", "11.222.333/0001"},
		{"1122233300018", "11.222.333/0001-8"},
		{"11222333000181", "11.222.333/0001-81"},
		{"1122233300018199", "11.222.333/0001-81"},
		{"11.222.333/0001-81", "11.222.333/0001-81"},
	}
	for _, tc := range cases {
		if got := mask.CNPJ(tc.in); got != tc.want {
			t.Fatalf("CNPJ(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMasksAreIdempotentAndDigitPreserving(t *testing.T) {
	const digits = "98765432109876"
	masks := map[string]struct {
		fn  mask.Func
		max int
	}{
		"phone": {mask.Phone, 11},
		"cpf":   {mask.CPF, 11},
		"cnpj":  {mask.CNPJ, 14},
	}

	for name, m := range masks {
		for n := 0; n <= m.max; n++ {
			input := digits[:n]
			once := m.fn(input)
			if twice := m.fn(once); twice != once {
				t.Fatalf("%s not idempotent for %q: %q then %q", name, input, once, twice)
			}
			if got := mask.Digits(once); got != input {
				t.Fatalf("%s dropped digits for %q: got %q", name, input, got)
			}
		}
	}
}

func TestDigits(t *testing.T) {
	if got := mask.Digits(" 12a-3.4/5 "); got != "12345" {
		t.Fatalf("Digits = %q", got)
	}
	if got := mask.Digits("١٢٣"); got != "" {
		t.Fatalf("expected non-ASCII digits to be dropped, got %q", got)
	}
	if got := mask.Digits(strings.Repeat("x", 4)); got != "" {
		t.Fatalf("expected empty digits, got %q", got)
	}
}
