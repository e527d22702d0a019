package validation

// MessageKey identifies a validation message in a Catalog.
type MessageKey string

const (
	MsgFallback     MessageKey = "field.invalid"
	MsgNameMin      MessageKey = "name.min"
	MsgNameMax      MessageKey = "name.max"
	MsgNameLetters  MessageKey = "name.letters"
	MsgEmailInvalid MessageKey = "email.invalid"
	MsgEmailMax     MessageKey = "email.max"
	MsgPhoneInvalid MessageKey = "phone.invalid"
	MsgCPFFormat    MessageKey = "cpf.format"
	MsgCPFInvalid   MessageKey = "cpf.invalid"
	MsgCNPJFormat   MessageKey = "cnpj.format"
	MsgCNPJInvalid  MessageKey = "cnpj.invalid"
	MsgCompanyMin   MessageKey = "company.min"
	MsgCompanyMax   MessageKey = "company.max"
	MsgMessageMax   MessageKey = "message.max"
)

// Catalog maps message keys to display strings. Keys missing from a custom
// catalog resolve through PortugueseMessages.
type Catalog map[MessageKey]string

// PortugueseMessages is the site's default (pt-BR) catalog.
var PortugueseMessages = Catalog{
	MsgFallback:     "Campo inválido",
	MsgNameMin:      "Nome deve ter pelo menos 3 caracteres",
	MsgNameMax:      "Nome deve ter no máximo 100 caracteres",
	MsgNameLetters:  "Nome deve conter apenas letras",
	MsgEmailInvalid: "E-mail inválido",
	MsgEmailMax:     "E-mail deve ter no máximo 255 caracteres",
	MsgPhoneInvalid: "Telefone inválido. Use: (00) 00000-0000",
	MsgCPFFormat:    "CPF inválido. Use: 000.000.000-00",
	MsgCPFInvalid:   "CPF inválido",
	MsgCNPJFormat:   "CNPJ inválido. Use: 00.000.000/0000-00",
	MsgCNPJInvalid:  "CNPJ inválido",
	MsgCompanyMin:   "Nome da empresa deve ter pelo menos 2 caracteres",
	MsgCompanyMax:   "Nome da empresa deve ter no máximo 100 caracteres",
	MsgMessageMax:   "Mensagem deve ter no máximo 1000 caracteres",
}

// EnglishMessages is an en-US catalog.
var EnglishMessages = Catalog{
	MsgFallback:     "Invalid field",
	MsgNameMin:      "Name must have at least 3 characters",
	MsgNameMax:      "Name must have at most 100 characters",
	MsgNameLetters:  "Name must contain letters only",
	MsgEmailInvalid: "Invalid e-mail",
	MsgEmailMax:     "E-mail must have at most 255 characters",
	MsgPhoneInvalid: "Invalid phone. Use: (00) 00000-0000",
	MsgCPFFormat:    "Invalid CPF. Use: 000.000.000-00",
	MsgCPFInvalid:   "Invalid CPF",
	MsgCNPJFormat:   "Invalid CNPJ. Use: 00.000.000/0000-00",
	MsgCNPJInvalid:  "Invalid CNPJ",
	MsgCompanyMin:   "Company name must have at least 2 characters",
	MsgCompanyMax:   "Company name must have at most 100 characters",
	MsgMessageMax:   "Message must have at most 1000 characters",
}

// CatalogFor returns the catalog registered for a locale, defaulting to
// Portuguese.
func CatalogFor(locale string) Catalog {
	switch locale {
	case "en", "en-US", "en_US", "en-GB":
		return EnglishMessages
	default:
		return PortugueseMessages
	}
}

func (c Catalog) lookup(key MessageKey) string {
	if msg, ok := c[key]; ok && msg != "" {
		return msg
	}
	if msg, ok := PortugueseMessages[key]; ok {
		return msg
	}
	return string(key)
}
