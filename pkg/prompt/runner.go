package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/validation"
)

// Runner fills a contact session from the terminal: it picks the variant,
// asks each field through the same change/blur pipeline the site uses and
// submits after confirmation.
type Runner struct {
	driver      PromptDriver
	logger      *zap.Logger
	theme       Theme
	maxAttempts int
}

// New constructs a Runner with defaults (survey driver, default theme).
func New(options ...Option) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		theme:  DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Run drives session to a submission. It returns the relay receipt on
// success, ErrDeclined when the user does not confirm and ErrAborted on
// interrupt.
func (r *Runner) Run(ctx context.Context, session *contact.Session) (relay.Receipt, error) {
	if ctx == nil {
		return relay.Receipt{}, errors.New("prompt: context is required")
	}
	if session == nil {
		return relay.Receipt{}, errors.New("prompt: session is required")
	}

	if solution, ok := session.Solution(); ok {
		if err := r.chooseInterest(ctx, session, solution); err != nil {
			return relay.Receipt{}, err
		}
	} else if err := r.chooseType(ctx, session); err != nil {
		return relay.Receipt{}, err
	}

	for _, name := range session.Form().Names() {
		if err := r.promptField(ctx, session, name); err != nil {
			return relay.Receipt{}, err
		}
	}

	if err := r.driver.Info(ctx, r.summary(session)); err != nil {
		return relay.Receipt{}, err
	}
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Enviar mensagem?", Default: true})
	if err != nil {
		return relay.Receipt{}, err
	}
	if !ok {
		return relay.Receipt{}, ErrDeclined
	}

	receipt, err := session.Submit(ctx)
	switch {
	case err == nil:
		r.logger.Debug("prompt submission sent", zap.String("attempt", receipt.ID))
		session.Acknowledge()
		return receipt, r.driver.Info(ctx, r.theme.InfoPrefix+"Mensagem enviada! "+contact.SuccessMessage)
	case errors.Is(err, contact.ErrInvalidForm):
		r.report(ctx, contact.InvalidFormMessage)
		for name, msg := range session.Form().Errors() {
			r.report(ctx, fmt.Sprintf("%s: %s", contact.FieldLabel(name), msg))
		}
		return receipt, err
	default:
		r.report(ctx, relay.RetryMessage)
		return receipt, err
	}
}

func (r *Runner) chooseType(ctx context.Context, session *contact.Session) error {
	types := contact.Types()
	options := make([]string, len(types))
	current := 0
	for i, t := range types {
		options[i] = t.Label()
		if t == session.Type() {
			current = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Tipo de contato",
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(types) {
		return fmt.Errorf("%w: option %d", contact.ErrUnknownType, idx)
	}
	if types[idx] == session.Type() {
		return nil
	}
	return session.SwitchType(types[idx])
}

func (r *Runner) chooseInterest(ctx context.Context, session *contact.Session, solution contact.Solution) error {
	if len(solution.Interests) == 0 {
		return nil
	}
	current := indexOf(solution.Interests, session.Interest())
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Interesse",
		Options:      solution.Interests,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(solution.Interests) {
		return fmt.Errorf("%w: option %d", contact.ErrUnknownInterest, idx)
	}
	return session.SetInterest(solution.Interests[idx])
}

func (r *Runner) promptField(ctx context.Context, session *contact.Session, name string) error {
	f := session.Form()
	kind, _ := f.Kind(name)
	label := contact.FieldLabel(name)

	for attempt := 1; ; attempt++ {
		current := f.State(name).Value

		var raw string
		var err error
		if kind == validation.KindMessage {
			raw, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
		} else {
			raw, err = r.driver.Input(ctx, InputConfig{
				Message: label,
				Default: current,
				Help:    contact.FieldPlaceholder(name),
			})
		}
		if err != nil {
			return err
		}

		if err := f.Change(name, raw); err != nil {
			return err
		}
		if err := f.Blur(name); err != nil {
			return err
		}
		msg := f.State(name).Visible()
		if msg == "" {
			return nil
		}
		r.report(ctx, msg)
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, name)
		}
	}
}

func (r *Runner) summary(session *contact.Session) string {
	var b strings.Builder
	if solution, ok := session.Solution(); ok {
		fmt.Fprintf(&b, "%s (%s)\n", solution.Name, session.Interest())
	} else {
		fmt.Fprintf(&b, "%s\n", session.Type().Label())
	}
	f := session.Form()
	for _, name := range f.Names() {
		fmt.Fprintf(&b, "  %s: %s\n", contact.FieldLabel(name), f.State(name).Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Runner) report(ctx context.Context, msg string) {
	if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
		r.logger.Debug("prompt info failed", zap.Error(err))
	}
}
