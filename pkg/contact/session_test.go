package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/form"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/validation"
)

type stubSender struct {
	payloads []relay.Payload
	err      error
	block    chan struct{}
	started  chan struct{}
}

func (s *stubSender) Send(ctx context.Context, payload relay.Payload) (relay.Receipt, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	s.payloads = append(s.payloads, payload)
	if s.err != nil {
		return relay.Receipt{Status: 500}, s.err
	}
	return relay.Receipt{ID: "attempt-1", Status: 200}, nil
}

func fill(t *testing.T, f *form.Form, values map[string]string) {
	t.Helper()
	for name, value := range values {
		if err := f.Change(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
}

func TestContactSession_SubmitPersonal(t *testing.T) {
	sender := &stubSender{}
	session, err := contact.NewContactSession(validation.DefaultSchema(), sender, contact.TypePersonal)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	fill(t, session.Form(), map[string]string{
		"name":    "Maria Souza",
		"email":   "maria@example.com",
		"phone":   "11987654321",
		"cpf":     "52998224725",
		"message": "Olá <b>equipe</b> & cia",
	})

	receipt, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.ID != "attempt-1" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	want := relay.Payload{
		"name":        "Maria Souza",
		"email":       "maria@example.com",
		"phone":       "(11) 98765-4321",
		"cpf":         "529.982.247-25",
		"message":     "Olá equipe & cia",
		"contactType": "pessoa-fisica",
		"subject":     "Novo contato via Site - pessoa-fisica",
		"_subject":    "Novo contato via Site - pessoa-fisica",
	}
	if diff := cmp.Diff([]relay.Payload{want}, sender.payloads); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if !session.Submitted() || session.Submitting() {
		t.Fatalf("expected submitted session")
	}
	for _, name := range session.Form().Names() {
		if got := session.Form().State(name); got != (form.FieldState{}) {
			t.Fatalf("field %s not reset after success: %+v", name, got)
		}
	}

	session.Acknowledge()
	if session.Submitted() {
		t.Fatalf("acknowledge must return to editing")
	}
}

func TestContactSession_InvalidFormDoesNotSend(t *testing.T) {
	sender := &stubSender{}
	session, err := contact.NewContactSession(validation.DefaultSchema(), sender, contact.TypeBusiness)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	fill(t, session.Form(), map[string]string{"cnpj": "11111111111111"})

	if _, err := session.Submit(context.Background()); !errors.Is(err, contact.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if len(sender.payloads) != 0 {
		t.Fatalf("invalid form must not be sent")
	}
	if got := session.Form().State("cnpj"); got.Error != "CNPJ inválido" || !got.Touched {
		t.Fatalf("unexpected cnpj state %+v", got)
	}
}

func TestContactSession_RelayFailureKeepsFieldState(t *testing.T) {
	sender := &stubSender{err: &relay.SubmitError{Status: 500}}
	session, err := contact.NewContactSession(validation.DefaultSchema(), sender, contact.TypePartner)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	fill(t, session.Form(), map[string]string{
		"name":    "Carlos Lima",
		"email":   "carlos@example.com",
		"phone":   "1140004000",
		"company": "Atos",
		"cnpj":    "11222333000181",
	})

	_, err = session.Submit(context.Background())
	if !errors.Is(err, relay.ErrRejected) {
		t.Fatalf("expected relay rejection, got %v", err)
	}
	if session.Submitted() || session.Submitting() {
		t.Fatalf("failed submission must re-enable the form")
	}
	if got := session.Form().State("cnpj"); got.Value != "11.222.333/0001-81" || got.Error != "" {
		t.Fatalf("field state changed after relay failure: %+v", got)
	}
	if got := sender.payloads[0]["contactType"]; got != "parceiro" {
		t.Fatalf("unexpected contact type %q", got)
	}
}

func TestContactSession_SingleInFlight(t *testing.T) {
	sender := &stubSender{block: make(chan struct{}), started: make(chan struct{})}
	session, err := contact.NewContactSession(validation.DefaultSchema(), sender, contact.TypePersonal)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	fill(t, session.Form(), map[string]string{
		"name":  "Maria Souza",
		"email": "maria@example.com",
		"phone": "11987654321",
		"cpf":   "52998224725",
	})

	done := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background())
		done <- err
	}()
	<-sender.started

	if !session.Submitting() {
		t.Fatalf("expected in-flight flag")
	}
	if _, err := session.Submit(context.Background()); !errors.Is(err, contact.ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(sender.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if session.Submitting() {
		t.Fatalf("in-flight flag not cleared")
	}
}

func TestContactSession_SwitchTypeClearsState(t *testing.T) {
	session, err := contact.NewContactSession(validation.DefaultSchema(), &stubSender{}, contact.TypePersonal)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	fill(t, session.Form(), map[string]string{"name": "Ana Paula", "cpf": "123"})
	_ = session.Form().Blur("cpf")

	if err := session.SwitchType(contact.TypeBusiness); err != nil {
		t.Fatalf("switch: %v", err)
	}
	want := []string{"name", "email", "phone", "company", "cnpj", "message"}
	if diff := cmp.Diff(want, session.Form().Names()); diff != "" {
		t.Fatalf("field set mismatch (-want +got):\n%s", diff)
	}
	for _, name := range want {
		if got := session.Form().State(name); got != (form.FieldState{}) {
			t.Fatalf("field %s not cleared: %+v", name, got)
		}
	}

	if err := session.SwitchType("cliente"); !errors.Is(err, contact.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestSolutionSession_Payload(t *testing.T) {
	solution, err := contact.FindSolution("credito-estruturado")
	if err != nil {
		t.Fatalf("find solution: %v", err)
	}
	sender := &stubSender{}
	session := contact.NewSolutionSession(validation.DefaultSchema(), sender, solution)

	if got := session.Interest(); got != "Capital de giro corporativo" {
		t.Fatalf("expected first interest by default, got %q", got)
	}
	if err := session.SetInterest("Project finance"); err != nil {
		t.Fatalf("set interest: %v", err)
	}
	if err := session.SetInterest("Bitcoin"); !errors.Is(err, contact.ErrUnknownInterest) {
		t.Fatalf("expected ErrUnknownInterest, got %v", err)
	}
	if err := session.SwitchType(contact.TypePersonal); !errors.Is(err, contact.ErrNotContactForm) {
		t.Fatalf("expected ErrNotContactForm, got %v", err)
	}

	fill(t, session.Form(), map[string]string{
		"name":    "Carlos Lima",
		"email":   "carlos@example.com",
		"phone":   "1140004000",
		"company": "Atos Holding",
		"cnpj":    "11222333000181",
	})
	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := relay.Payload{
		"name":         "Carlos Lima",
		"email":        "carlos@example.com",
		"phone":        "(11) 4000-4000",
		"company":      "Atos Holding",
		"cnpj":         "11.222.333/0001-81",
		"message":      "",
		"solutionName": "Crédito Estruturado",
		"solutionType": "b2b",
		"interest":     "Project finance",
	}
	if diff := cmp.Diff(want, sender.payloads[0]); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if got := session.Interest(); got != "Capital de giro corporativo" {
		t.Fatalf("interest not reset after success: %q", got)
	}
}
