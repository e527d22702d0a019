package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atoshub/go-site/pkg/form"
	"github.com/atoshub/go-site/pkg/validation"
)

func personalForm(t *testing.T) *form.Form {
	t.Helper()
	return form.New(validation.DefaultSchema(), form.Fields("name", "email", "phone", "cpf", "message"), nil)
}

func TestNew_InitialState(t *testing.T) {
	f := form.New(validation.DefaultSchema(), form.Fields("name", "email", "name"), map[string]string{"email": "a@b.co"})

	if diff := cmp.Diff([]string{"name", "email"}, f.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]form.FieldState{
		"name":  {},
		"email": {Value: "a@b.co"},
	}
	for name, st := range want {
		if diff := cmp.Diff(st, f.State(name)); diff != "" {
			t.Fatalf("state %s mismatch (-want +got):\n%s", name, diff)
		}
	}
	if got := f.State("missing"); got != (form.FieldState{}) {
		t.Fatalf("expected zero state for absent field, got %+v", got)
	}
}

func TestChange_FormatsAndDefersValidation(t *testing.T) {
	f := personalForm(t)

	if err := f.Change("cpf", "123"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if got := f.State("cpf"); got != (form.FieldState{Value: "123"}) {
		t.Fatalf("unexpected state after first keystrokes: %+v", got)
	}

	if err := f.Change("cpf", "52998224725"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if got := f.State("cpf").Value; got != "529.982.247-25" {
		t.Fatalf("expected masked CPF, got %q", got)
	}

	if err := f.Blur("cpf"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if got := f.State("cpf"); got != (form.FieldState{Value: "529.982.247-25", Touched: true}) {
		t.Fatalf("unexpected state after blur: %+v", got)
	}
}

func TestBlur_RepeatedDigitsCPF(t *testing.T) {
	f := personalForm(t)
	if err := f.Change("cpf", "11111111111"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := f.Blur("cpf"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	want := form.FieldState{Value: "111.111.111-11", Error: "CPF inválido", Touched: true}
	if diff := cmp.Diff(want, f.State("cpf")); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestChange_TouchedFieldRevalidatesLive(t *testing.T) {
	f := personalForm(t)
	_ = f.Change("phone", "1199")
	_ = f.Blur("phone")
	if f.State("phone").Error == "" {
		t.Fatalf("expected partial phone to fail")
	}

	_ = f.Change("phone", "11987654321")
	got := f.State("phone")
	if got.Value != "(11) 98765-4321" || got.Error != "" || !got.Touched {
		t.Fatalf("expected live revalidation to clear the error, got %+v", got)
	}

	_ = f.Change("phone", "119")
	if f.State("phone").Error == "" {
		t.Fatalf("expected live revalidation to surface the error again")
	}
}

func TestChange_DoesNotTouchOtherFields(t *testing.T) {
	f := personalForm(t)
	_ = f.Blur("name")
	before := f.State("name")

	_ = f.Change("email", "x")
	if diff := cmp.Diff(before, f.State("name")); diff != "" {
		t.Fatalf("name state changed (-want +got):\n%s", diff)
	}
	if f.State("email").Touched {
		t.Fatalf("change must not touch the field")
	}
}

func TestUnknownField(t *testing.T) {
	f := personalForm(t)
	if err := f.Change("cnpj", "1"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Blur("cnpj"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if len(f.Names()) != 5 {
		t.Fatalf("field set grew: %v", f.Names())
	}
}

func TestValidateAll_MarksEveryFieldTouched(t *testing.T) {
	f := form.New(validation.DefaultSchema(), form.Fields("name", "email"), nil)
	_ = f.Change("email", "ana@example.com")

	if f.ValidateAll() {
		t.Fatalf("expected validation to fail with an empty name")
	}

	name := f.State("name")
	if !name.Touched || name.Error == "" {
		t.Fatalf("expected touched name with error, got %+v", name)
	}
	email := f.State("email")
	if !email.Touched || email.Error != "" {
		t.Fatalf("expected touched email without error, got %+v", email)
	}

	want := map[string]string{"name": "Nome deve ter pelo menos 3 caracteres"}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAll_Valid(t *testing.T) {
	f := personalForm(t)
	_ = f.Change("name", "Maria Souza")
	_ = f.Change("email", "maria@example.com")
	_ = f.Change("phone", "11987654321")
	_ = f.Change("cpf", "52998224725")
	_ = f.Change("message", "Quero saber mais")

	if !f.ValidateAll() {
		t.Fatalf("expected valid form, errors: %v", f.Errors())
	}
	if !f.IsValid() {
		t.Fatalf("expected IsValid after successful ValidateAll")
	}
}

func TestValidateField_CustomSchema(t *testing.T) {
	schema := validation.NewSchema(validation.WithRule(validation.KindName, validation.Rule{
		Checks: []validation.Check{validation.MinLen(1, "required")},
	}))
	f := form.New(schema, form.Fields("name", "notes"), nil)

	if got := f.ValidateField("name", ""); got != "required" {
		t.Fatalf("expected custom rule message, got %q", got)
	}
	if got := f.ValidateField("notes", ""); got != "" {
		t.Fatalf("free text must be valid, got %q", got)
	}
}

func TestReset(t *testing.T) {
	f := personalForm(t)
	_ = f.Change("name", "Jo")
	_ = f.Blur("name")
	_ = f.Change("cpf", "123")

	f.Reset()

	for _, name := range f.Names() {
		if got := f.State(name); got != (form.FieldState{}) {
			t.Fatalf("field %s not reset: %+v", name, got)
		}
	}
	if diff := cmp.Diff([]string{"name", "email", "phone", "cpf", "message"}, f.Names()); diff != "" {
		t.Fatalf("reset changed field set (-want +got):\n%s", diff)
	}
}

func TestFormat_PassThroughForFreeText(t *testing.T) {
	if got := form.Format(validation.KindName, "  Ana 1 "); got != "  Ana 1 " {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := form.Format(validation.KindCNPJ, "11222333000181"); got != "11.222.333/0001-81" {
		t.Fatalf("unexpected CNPJ mask %q", got)
	}
}

func TestFieldState_Visible(t *testing.T) {
	hidden := form.FieldState{Error: "x"}
	if hidden.Visible() != "" {
		t.Fatalf("untouched errors must stay hidden")
	}
	shown := form.FieldState{Error: "x", Touched: true}
	if shown.Visible() != "x" {
		t.Fatalf("touched errors must be visible")
	}
}

func TestIsValid_TouchedBlankField(t *testing.T) {
	f := personalForm(t)
	_ = f.Change("name", "Maria Souza")
	_ = f.Change("email", "maria@example.com")
	_ = f.Change("phone", "11987654321")
	_ = f.Change("cpf", "52998224725")

	if !f.ValidateAll() {
		t.Fatalf("an empty message is a valid value, errors: %v", f.Errors())
	}
	if f.IsValid() {
		t.Fatalf("a touched blank field must keep the form from being valid")
	}

	_ = f.Change("message", "Oi")
	if !f.IsValid() {
		t.Fatalf("expected valid form once every touched field holds a value")
	}
}
