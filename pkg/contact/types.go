package contact

import (
	"fmt"
	"strings"
)

// Type is the contact form variant chosen by the visitor.
type Type string

const (
	TypePersonal Type = "pessoa-fisica"
	TypeBusiness Type = "empresa"
	TypePartner  Type = "parceiro"
)

// Types lists the contact variants in display order.
func Types() []Type {
	return []Type{TypePersonal, TypeBusiness, TypePartner}
}

// ParseType resolves a contact type from its wire value.
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypePersonal, TypeBusiness, TypePartner:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
}

// Label is the Portuguese label shown for t.
func (t Type) Label() string {
	switch t {
	case TypePersonal:
		return "Pessoa Física"
	case TypeBusiness:
		return "Empresa"
	case TypePartner:
		return "Parceiro"
	default:
		return string(t)
	}
}

// FieldNames returns the field set of t: personal contacts carry a CPF,
// companies and partners a company name and CNPJ.
func (t Type) FieldNames() []string {
	if t == TypeBusiness || t == TypePartner {
		return businessFields()
	}
	return personalFields()
}

func personalFields() []string {
	return []string{"name", "email", "phone", "cpf", "message"}
}

func businessFields() []string {
	return []string{"name", "email", "phone", "company", "cnpj", "message"}
}

var fieldLabels = map[string]string{
	"name":    "Nome completo",
	"email":   "E-mail",
	"phone":   "Telefone",
	"cpf":     "CPF",
	"company": "Nome da empresa",
	"cnpj":    "CNPJ",
	"message": "Mensagem",
}

var fieldPlaceholders = map[string]string{
	"name":    "Seu nome",
	"email":   "seu@email.com",
	"phone":   "(00) 00000-0000",
	"cpf":     "000.000.000-00",
	"company": "Nome da sua empresa",
	"cnpj":    "00.000.000/0000-00",
	"message": "Como podemos ajudar?",
}

// FieldLabel is the label shown next to a field. Unknown names are returned
// unchanged.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

// FieldPlaceholder is the input hint for a field, or "".
func FieldPlaceholder(name string) string {
	return fieldPlaceholders[name]
}
