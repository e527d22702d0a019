package validation

import "strings"

// Kind is the closed set of contact form field kinds. The kind selects both
// the input mask and the validation rule of a field.
type Kind int

const (
	// KindText is free text without a registered rule.
	KindText Kind = iota
	KindName
	KindEmail
	KindPhone
	KindCPF
	KindCNPJ
	KindCompany
	KindMessage
)

var kindNames = map[Kind]string{
	KindText:    "text",
	KindName:    "name",
	KindEmail:   "email",
	KindPhone:   "phone",
	KindCPF:     "cpf",
	KindCNPJ:    "cnpj",
	KindCompany: "company",
	KindMessage: "message",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindForName maps the field names used by the site forms onto kinds.
// Unknown names are free text.
func KindForName(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		return KindName
	case "email":
		return KindEmail
	case "phone":
		return KindPhone
	case "cpf":
		return KindCPF
	case "cnpj":
		return KindCNPJ
	case "company":
		return KindCompany
	case "message":
		return KindMessage
	default:
		return KindText
	}
}
