package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/testsupport"
	"github.com/atoshub/go-site/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	selectErr    error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectErr != nil {
		return -1, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newPersonalSession(t *testing.T, sender relay.Sender) *contact.Session {
	t.Helper()
	session, err := contact.NewContactSession(validation.DefaultSchema(), sender, contact.TypePersonal)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestRun_PersonalContactReasksInvalidField(t *testing.T) {
	sender := &testsupport.RecordingSender{}
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"Maria Souza", "maria@example.com", "11987654321", "11111111111", "52998224725"},
		textAreas: []string{"Olá <b>mundo</b>"},
		confirm:   []bool{true},
	}

	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), newPersonalSession(t, sender))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ID == "" {
		t.Fatalf("expected receipt id")
	}

	payloads := sender.Payloads()
	if len(payloads) != 1 {
		t.Fatalf("expected one submission, got %d", len(payloads))
	}
	want := relay.Payload{
		"name":        "Maria Souza",
		"email":       "maria@example.com",
		"phone":       "(11) 98765-4321",
		"cpf":         "529.982.247-25",
		"message":     "Olá mundo",
		"contactType": "pessoa-fisica",
		"subject":     "Novo contato via Site - pessoa-fisica",
		"_subject":    "Novo contato via Site - pessoa-fisica",
	}
	if diff := cmp.Diff(want, payloads[0]); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !containsMessage(driver.infoMessages, "✘ CPF inválido") {
		t.Fatalf("expected CPF error to be shown, got %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, contact.SuccessMessage) {
		t.Fatalf("expected success message, got %v", driver.infoMessages)
	}
}

func TestRun_SwitchesToBusinessFields(t *testing.T) {
	sender := &testsupport.RecordingSender{}
	driver := &stubDriver{
		selectIdx: []int{1},
		inputs:    []string{"João Lima", "joao@empresa.com", "1140004000", "Atos", "11222333000181"},
		textAreas: []string{""},
		confirm:   []bool{true},
	}

	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), newPersonalSession(t, sender)); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := sender.Payloads()[0]
	if got["cnpj"] != "11.222.333/0001-81" || got["contactType"] != "empresa" {
		t.Fatalf("unexpected business payload: %v", got)
	}
	if _, ok := got["cpf"]; ok {
		t.Fatalf("business payload must not carry cpf")
	}
}

func TestRun_SolutionInterest(t *testing.T) {
	solution, err := contact.FindSolution("credito-imobiliario")
	if err != nil {
		t.Fatalf("find solution: %v", err)
	}
	sender := &testsupport.RecordingSender{}
	session := contact.NewSolutionSession(validation.DefaultSchema(), sender, solution)
	driver := &stubDriver{
		selectIdx: []int{1},
		inputs:    []string{"Maria Souza", "maria@example.com", "11987654321", "52998224725"},
		textAreas: []string{"quero simular"},
		confirm:   []bool{true},
	}

	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := sender.Payloads()[0]
	if got["interest"] != solution.Interests[1] || got["solutionName"] != solution.Name {
		t.Fatalf("unexpected solution payload: %v", got)
	}
}

func TestRun_Declined(t *testing.T) {
	sender := &testsupport.RecordingSender{}
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"Maria Souza", "maria@example.com", "11987654321", "52998224725"},
		textAreas: []string{""},
		confirm:   []bool{false},
	}

	_, err := New(WithPromptDriver(driver)).Run(context.Background(), newPersonalSession(t, sender))
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if len(sender.Payloads()) != 0 {
		t.Fatalf("declined form must not be sent")
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{selectErr: ErrAborted}
	_, err := New(WithPromptDriver(driver)).Run(context.Background(), newPersonalSession(t, &testsupport.RecordingSender{}))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_MaxAttempts(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"Jo", "J"},
	}
	_, err := New(WithPromptDriver(driver), WithMaxAttempts(2)).Run(context.Background(), newPersonalSession(t, &testsupport.RecordingSender{}))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected two attempts, got %d", driver.inputPos)
	}
}

func TestRun_RelayFailureKeepsValues(t *testing.T) {
	sender := &testsupport.RecordingSender{Err: relay.ErrUnavailable}
	session := newPersonalSession(t, sender)
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"Maria Souza", "maria@example.com", "11987654321", "52998224725"},
		textAreas: []string{""},
		confirm:   []bool{true},
	}

	_, err := New(WithPromptDriver(driver)).Run(context.Background(), session)
	if !errors.Is(err, relay.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !containsMessage(driver.infoMessages, relay.RetryMessage) {
		t.Fatalf("expected retry message, got %v", driver.infoMessages)
	}
	if got := session.Form().State("name").Value; got != "Maria Souza" {
		t.Fatalf("values must survive a failed submission, got %q", got)
	}
}

func containsMessage(messages []string, needle string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
