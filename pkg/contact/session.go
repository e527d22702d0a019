package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/form"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/validation"
)

var (
	ErrUnknownType     = errors.New("contact: unknown contact type")
	ErrUnknownSolution = errors.New("contact: unknown solution")
	ErrUnknownInterest = errors.New("contact: unknown interest")
	ErrInvalidForm     = errors.New("contact: form has invalid fields")
	ErrSubmitInFlight  = errors.New("contact: submission already in flight")
	ErrNotContactForm  = errors.New("contact: session is bound to a solution")
)

// Banner texts shown after a submit attempt.
const (
	InvalidFormMessage = "Por favor, corrija os campos destacados."
	SuccessMessage     = "Nossa equipe entrará em contato em breve."
)

// Subject returns the relay subject line for a contact type.
func Subject(t Type) string {
	return "Novo contato via Site - " + string(t)
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPolicy replaces the sanitiser applied to free-text values before they
// are sent.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(s *Session) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithValues seeds the initial field values.
func WithValues(values map[string]string) Option {
	return func(s *Session) {
		s.initial = values
	}
}

// Session drives one mounted contact form: the field state, the variant and
// the single in-flight submission.
type Session struct {
	schema   validation.Schema
	sender   relay.Sender
	logger   *zap.Logger
	policy   *bluemonday.Policy
	initial  map[string]string
	form     *form.Form
	kind     Type
	solution *Solution
	interest string

	mu         sync.Mutex
	submitting bool
	submitted  bool
}

// NewContactSession starts a session for the general contact form.
func NewContactSession(schema validation.Schema, sender relay.Sender, t Type, options ...Option) (*Session, error) {
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	s := newSession(schema, sender, options)
	s.kind = t
	s.form = form.New(schema, form.Fields(t.FieldNames()...), s.initial)
	return s, nil
}

// NewSolutionSession starts a session for a solution page form.
func NewSolutionSession(schema validation.Schema, sender relay.Sender, solution Solution, options ...Option) *Session {
	s := newSession(schema, sender, options)
	s.solution = &solution
	s.interest = solution.DefaultInterest()
	s.form = form.New(schema, form.Fields(solution.FieldNames()...), s.initial)
	return s
}

func newSession(schema validation.Schema, sender relay.Sender, options []Option) *Session {
	s := &Session{
		schema: schema,
		sender: sender,
		logger: zap.NewNop(),
		policy: bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Form exposes the field state manager.
func (s *Session) Form() *form.Form {
	return s.form
}

// Type returns the contact type, or "" for solution sessions.
func (s *Session) Type() Type {
	return s.kind
}

// Solution returns the bound solution, if any.
func (s *Session) Solution() (Solution, bool) {
	if s.solution == nil {
		return Solution{}, false
	}
	return *s.solution, true
}

// SwitchType replaces the form with a fresh, empty one for t's field set.
func (s *Session) SwitchType(t Type) error {
	if s.solution != nil {
		return ErrNotContactForm
	}
	if _, err := ParseType(string(t)); err != nil {
		return err
	}
	s.kind = t
	s.form = form.New(s.schema, form.Fields(t.FieldNames()...), nil)
	return nil
}

// Interest returns the selected interest of a solution session.
func (s *Session) Interest() string {
	return s.interest
}

// SetInterest selects one of the solution's interest options.
func (s *Session) SetInterest(value string) error {
	if s.solution == nil {
		return fmt.Errorf("%w: contact forms have no interests", ErrUnknownInterest)
	}
	if !s.solution.HasInterest(value) {
		return fmt.Errorf("%w: %q", ErrUnknownInterest, value)
	}
	s.interest = value
	return nil
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submitted reports whether the last submission succeeded and has not been
// acknowledged yet.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Acknowledge returns a submitted session to editing with an empty form.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	s.submitted = false
	s.mu.Unlock()
	s.form.Reset()
	if s.solution != nil {
		s.interest = s.solution.DefaultInterest()
	}
}

// Payload builds the relay body from the current values.
func (s *Session) Payload() relay.Payload {
	payload := relay.Payload{}
	for name, value := range s.form.Values() {
		if validation.KindForName(name) == validation.KindMessage {
			value = s.sanitize(value)
		}
		payload[name] = value
	}
	if _, ok := payload["message"]; !ok {
		payload["message"] = ""
	}

	if s.solution != nil {
		interest := s.interest
		if interest == "" {
			interest = s.solution.DefaultInterest()
		}
		payload["solutionName"] = s.solution.Name
		payload["solutionType"] = string(s.solution.Audience)
		payload["interest"] = interest
		return payload
	}

	subject := Subject(s.kind)
	payload["contactType"] = string(s.kind)
	payload["subject"] = subject
	payload["_subject"] = subject
	return payload
}

// Submit validates every field and, when valid, sends the payload. Field
// state is reset on success and left untouched on relay failure. Only one
// submission may be in flight.
func (s *Session) Submit(ctx context.Context) (relay.Receipt, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return relay.Receipt{}, ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	if !s.form.ValidateAll() {
		return relay.Receipt{}, ErrInvalidForm
	}

	receipt, err := s.sender.Send(ctx, s.Payload())
	if err != nil {
		s.logger.Warn("contact submission failed", zap.String("form", s.name()), zap.Error(err))
		return receipt, err
	}

	s.logger.Info("contact submission sent", zap.String("form", s.name()), zap.String("attempt", receipt.ID))
	s.mu.Lock()
	s.submitted = true
	s.mu.Unlock()
	s.form.Reset()
	if s.solution != nil {
		s.interest = s.solution.DefaultInterest()
	}
	return receipt, nil
}

func (s *Session) name() string {
	if s.solution != nil {
		return s.solution.Slug
	}
	return string(s.kind)
}

func (s *Session) sanitize(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}
