package contact

import (
	"fmt"
	"strings"
)

// Audience is the solution audience: individuals (b2c) or companies (b2b).
type Audience string

const (
	AudienceB2C Audience = "b2c"
	AudienceB2B Audience = "b2b"
)

// Solution is a product page with its own contact form.
type Solution struct {
	Slug      string   `json:"slug" yaml:"slug"`
	Name      string   `json:"name" yaml:"name"`
	Audience  Audience `json:"type" yaml:"type"`
	Interests []string `json:"interests" yaml:"interests"`
}

// FieldNames returns the field set used by the solution form.
func (s Solution) FieldNames() []string {
	if s.Audience == AudienceB2B {
		return businessFields()
	}
	return personalFields()
}

// DefaultInterest is the first interest option, or "" when there are none.
func (s Solution) DefaultInterest() string {
	if len(s.Interests) == 0 {
		return ""
	}
	return s.Interests[0]
}

// HasInterest reports whether value is one of the solution's options.
func (s Solution) HasInterest(value string) bool {
	for _, option := range s.Interests {
		if option == value {
			return true
		}
	}
	return false
}

var catalogue = []Solution{
	{
		Slug:     "acesso-financeiro",
		Name:     "Acesso Financeiro",
		Audience: AudienceB2C,
		Interests: []string{
			"Abrir conta digital",
			"Solicitar cartão de débito",
			"Informações sobre taxas",
			"Dúvidas sobre transferências",
			"Outros",
		},
	},
	{
		Slug:     "credito-empreendedor",
		Name:     "Crédito ao Empreendedor",
		Audience: AudienceB2C,
		Interests: []string{
			"Capital de giro",
			"Compra de equipamentos",
			"Expansão do negócio",
			"Antecipação de recebíveis",
			"Linhas de fomento (BNDES/Pronampe)",
			"Outros",
		},
	},
	{
		Slug:     "credito-imobiliario",
		Name:     "Crédito Imobiliário",
		Audience: AudienceB2C,
		Interests: []string{
			"Compra de imóvel residencial",
			"Compra de imóvel comercial",
			"Construção",
			"Portabilidade de financiamento",
			"Uso do FGTS",
			"Outros",
		},
	},
	{
		Slug:     "banking-as-a-service",
		Name:     "Banking as a Service",
		Audience: AudienceB2B,
		Interests: []string{
			"Conta digital white label",
			"Integração de pagamentos (PIX/Boleto)",
			"Crédito embedded",
			"KYC e compliance",
			"Parceria estratégica",
			"Demonstração da plataforma",
			"Outros",
		},
	},
	{
		Slug:     "credito-estruturado",
		Name:     "Crédito Estruturado",
		Audience: AudienceB2B,
		Interests: []string{
			"Capital de giro corporativo",
			"Financiamento de aquisição",
			"Reestruturação de dívidas",
			"Acesso a BNDES/Finep",
			"Project finance",
			"Outros",
		},
	},
	{
		Slug:     "financiamento-corporativo",
		Name:     "Financiamento Corporativo",
		Audience: AudienceB2B,
		Interests: []string{
			"Project finance",
			"Aquisição de imóvel comercial/industrial",
			"Sale & Leaseback",
			"Built to Suit",
			"Refinanciamento",
			"Crédito com garantia real",
			"Outros",
		},
	},
}

// Solutions returns a copy of the built-in solution catalogue.
func Solutions() []Solution {
	out := make([]Solution, len(catalogue))
	for i, s := range catalogue {
		s.Interests = append([]string(nil), s.Interests...)
		out[i] = s
	}
	return out
}

// FindSolution looks a solution up by slug.
func FindSolution(slug string) (Solution, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, s := range Solutions() {
		if s.Slug == slug {
			return s, nil
		}
	}
	return Solution{}, fmt.Errorf("%w: %q", ErrUnknownSolution, slug)
}
