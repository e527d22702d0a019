package validation

import (
	"regexp"
	"sort"

	"github.com/atoshub/go-site/pkg/checksum"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

// Schema maps field kinds to rules. A Schema is read-only once built; pass
// it explicitly to whatever validates forms.
type Schema struct {
	rules    map[Kind]Rule
	fallback string
}

// Option customises NewSchema.
type Option func(*schemaConfig)

type schemaConfig struct {
	catalog   Catalog
	overrides map[Kind]*Rule
}

// WithMessages selects the catalog used by the built-in rules.
func WithMessages(catalog Catalog) Option {
	return func(cfg *schemaConfig) {
		if catalog != nil {
			cfg.catalog = catalog
		}
	}
}

// WithRule replaces the rule registered for kind.
func WithRule(kind Kind, rule Rule) Option {
	return func(cfg *schemaConfig) {
		r := rule
		cfg.overrides[kind] = &r
	}
}

// WithoutRule removes the rule for kind so values of that kind always pass.
func WithoutRule(kind Kind) Option {
	return func(cfg *schemaConfig) {
		cfg.overrides[kind] = nil
	}
}

// NewSchema builds the site rule table and applies options in order.
func NewSchema(options ...Option) Schema {
	cfg := &schemaConfig{
		catalog:   PortugueseMessages,
		overrides: make(map[Kind]*Rule),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	rules := defaultRules(cfg.catalog)
	for kind, rule := range cfg.overrides {
		if rule == nil {
			delete(rules, kind)
			continue
		}
		rules[kind] = *rule
	}

	return Schema{
		rules:    rules,
		fallback: cfg.catalog.lookup(MsgFallback),
	}
}

// DefaultSchema returns the Portuguese rule table.
func DefaultSchema() Schema {
	return NewSchema()
}

func defaultRules(c Catalog) map[Kind]Rule {
	return map[Kind]Rule{
		KindName: {
			Trim: true,
			Checks: []Check{
				MinLen(3, c.lookup(MsgNameMin)),
				MaxLen(100, c.lookup(MsgNameMax)),
				Matches(namePattern, c.lookup(MsgNameLetters)),
			},
		},
		KindEmail: {
			Trim: true,
			Checks: []Check{
				Email(c.lookup(MsgEmailInvalid)),
				MaxLen(255, c.lookup(MsgEmailMax)),
			},
		},
		KindPhone: {
			Checks: []Check{
				Matches(phonePattern, c.lookup(MsgPhoneInvalid)),
			},
		},
		KindCPF: {
			Checks: []Check{
				Matches(cpfPattern, c.lookup(MsgCPFFormat)),
				Satisfies(checksum.ValidCPF, c.lookup(MsgCPFInvalid)),
			},
		},
		KindCNPJ: {
			Checks: []Check{
				Matches(cnpjPattern, c.lookup(MsgCNPJFormat)),
				Satisfies(checksum.ValidCNPJ, c.lookup(MsgCNPJInvalid)),
			},
		},
		KindCompany: {
			Trim: true,
			Checks: []Check{
				MinLen(2, c.lookup(MsgCompanyMin)),
				MaxLen(100, c.lookup(MsgCompanyMax)),
			},
		},
		KindMessage: {
			Trim:     true,
			Optional: true,
			Checks: []Check{
				MaxLen(1000, c.lookup(MsgMessageMax)),
			},
		},
	}
}

// Rule returns the rule registered for kind.
func (s Schema) Rule(kind Kind) (Rule, bool) {
	rule, ok := s.rules[kind]
	return rule, ok
}

// Validate returns the first failure message for value, or "" when the value
// is valid or no rule is registered for kind.
func (s Schema) Validate(kind Kind, value string) string {
	rule, ok := s.rules[kind]
	if !ok {
		return ""
	}
	msg := rule.Validate(value)
	if msg == PortugueseMessages[MsgFallback] && s.fallback != "" {
		return s.fallback
	}
	return msg
}

// ValidateValues validates a name → value map, resolving kinds through
// KindForName. Issues are sorted by field name.
func (s Schema) ValidateValues(values map[string]string) Result {
	result := Result{Valid: true}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if msg := s.Validate(KindForName(name), values[name]); msg != "" {
			result.Valid = false
			result.Issues = append(result.Issues, Issue{Field: name, Message: msg})
		}
	}
	return result
}
