package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atoshub/go-site/pkg/mask"
	"github.com/atoshub/go-site/pkg/validation"
)

// ErrUnknownField is returned when an event names a field outside the form's
// field set.
var ErrUnknownField = errors.New("form: unknown field")

// formatters is the fixed kind → mask table. Kinds without an entry keep the
// raw input.
var formatters = map[validation.Kind]mask.Func{
	validation.KindPhone: mask.Phone,
	validation.KindCPF:   mask.CPF,
	validation.KindCNPJ:  mask.CNPJ,
}

// Format applies the mask registered for kind, passing the input through when
// the kind has none.
func Format(kind validation.Kind, raw string) string {
	if fn, ok := formatters[kind]; ok {
		return fn(raw)
	}
	return raw
}

// FieldState is the per-field display state. An empty Error means no error.
type FieldState struct {
	Value   string `json:"value"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched"`
}

// Visible returns the error only once the field has been touched.
func (s FieldState) Visible() string {
	if !s.Touched {
		return ""
	}
	return s.Error
}

// Field binds a field name to its kind.
type Field struct {
	Name string
	Kind validation.Kind
}

// Fields builds a field list from the site's field names.
func Fields(names ...string) []Field {
	out := make([]Field, 0, len(names))
	for _, name := range names {
		out = append(out, Field{Name: name, Kind: validation.KindForName(name)})
	}
	return out
}

// Form owns the state of one mounted form. It is not safe for concurrent use;
// every operation runs to completion synchronously.
type Form struct {
	schema validation.Schema
	fields []Field
	index  map[string]int
	state  map[string]FieldState
}

// New initialises a form with every field untouched and error free. Values
// come from initial when present, otherwise they start empty. Duplicate
// field names keep their first position.
func New(schema validation.Schema, fields []Field, initial map[string]string) *Form {
	f := &Form{
		schema: schema,
		index:  make(map[string]int, len(fields)),
		state:  make(map[string]FieldState, len(fields)),
	}
	for _, field := range fields {
		if _, exists := f.index[field.Name]; exists {
			continue
		}
		f.index[field.Name] = len(f.fields)
		f.fields = append(f.fields, field)
		f.state[field.Name] = FieldState{Value: initial[field.Name]}
	}
	return f
}

// Change applies the field formatter to raw and stores the result. Touched
// fields are re-validated immediately; untouched fields keep their error so
// nothing is shown while the user types for the first time.
func (f *Form) Change(name, raw string) error {
	field, ok := f.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	current := f.state[name]
	current.Value = Format(field.Kind, raw)
	if current.Touched {
		current.Error = f.schema.Validate(field.Kind, current.Value)
	}
	f.state[name] = current
	return nil
}

// Blur marks the field touched and validates its current value.
func (f *Form) Blur(name string) error {
	field, ok := f.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	current := f.state[name]
	current.Touched = true
	current.Error = f.schema.Validate(field.Kind, current.Value)
	f.state[name] = current
	return nil
}

// ValidateField returns the first failure message for value under the rule of
// the named field, or "" when valid. Fields outside the form are free text.
func (f *Form) ValidateField(name, value string) string {
	kind := validation.KindText
	if field, ok := f.field(name); ok {
		kind = field.Kind
	}
	return f.schema.Validate(kind, value)
}

// ValidateAll re-validates every field, marks all of them touched and reports
// whether every error is empty. The state map is replaced wholesale.
func (f *Form) ValidateAll() bool {
	next := make(map[string]FieldState, len(f.fields))
	valid := true
	for _, field := range f.fields {
		value := f.state[field.Name].Value
		msg := f.schema.Validate(field.Kind, value)
		if msg != "" {
			valid = false
		}
		next[field.Name] = FieldState{Value: value, Error: msg, Touched: true}
	}
	f.state = next
	return valid
}

// Reset empties every registered field. The field set does not change.
func (f *Form) Reset() {
	next := make(map[string]FieldState, len(f.fields))
	for _, field := range f.fields {
		next[field.Name] = FieldState{}
	}
	f.state = next
}

// State returns the state of name, or the zero state when absent.
func (f *Form) State(name string) FieldState {
	return f.state[name]
}

// Kind returns the kind of name and whether the field exists.
func (f *Form) Kind(name string) (validation.Kind, bool) {
	field, ok := f.field(name)
	return field.Kind, ok
}

// Names lists the field names in registration order.
func (f *Form) Names() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = field.Name
	}
	return out
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		out[field.Name] = f.state[field.Name].Value
	}
	return out
}

// Errors returns the visible errors keyed by field name.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for _, field := range f.fields {
		if msg := f.state[field.Name].Visible(); msg != "" {
			out[field.Name] = msg
		}
	}
	return out
}

// IsValid reports whether no field carries an error and every touched field
// holds a non-blank value. It does not validate anything by itself.
func (f *Form) IsValid() bool {
	for _, field := range f.fields {
		st := f.state[field.Name]
		if st.Error != "" {
			return false
		}
		if st.Touched && strings.TrimSpace(st.Value) == "" {
			return false
		}
	}
	return true
}

func (f *Form) field(name string) (Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[i], true
}
