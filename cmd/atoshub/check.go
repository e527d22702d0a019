package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atoshub/go-site/pkg/checksum"
	"github.com/atoshub/go-site/pkg/form"
	"github.com/atoshub/go-site/pkg/mask"
	"github.com/atoshub/go-site/pkg/validation"
)

var errInvalidValue = errors.New("invalid value")

var checkKinds = []string{"name", "email", "phone", "cpf", "cnpj", "company", "message"}

func (a *app) checkCmd() *cobra.Command {
	var complete bool
	c := &cobra.Command{
		Use:   "check <field> <value>",
		Short: "Format and validate a form value",
		Long: `Applies the input mask of a form field and validates the result with the site rules.

With --complete, a CPF base of 9 digits or a CNPJ base of 12 digits gets its
check digits appended before validation.`,
		Example:   "  atoshub check cpf 52998224725\n  atoshub check cnpj 112223330001 --complete",
		Args:      cobra.ExactArgs(2),
		ValidArgs: checkKinds,
		RunE: func(c *cobra.Command, args []string) error {
			return a.runCheck(c, args[0], args[1], complete)
		},
	}
	c.Flags().BoolVar(&complete, "complete", false, "Append the check digits to a CPF or CNPJ base")
	return c
}

func (a *app) runCheck(c *cobra.Command, field, raw string, complete bool) error {
	field = strings.ToLower(strings.TrimSpace(field))
	kind := validation.KindForName(field)
	if kind == validation.KindText {
		return fmt.Errorf("unknown field %q (valid: %s)", field, strings.Join(checkKinds, ", "))
	}

	if complete {
		completed, err := completeDigits(kind, raw)
		if err != nil {
			return err
		}
		raw = completed
	}

	value := form.Format(kind, raw)
	out := c.OutOrStdout()
	fmt.Fprintln(out, value)
	if msg := a.schema().Validate(kind, value); msg != "" {
		fmt.Fprintf(out, "✘ %s\n", msg)
		return fmt.Errorf("%w: %s", errInvalidValue, msg)
	}
	fmt.Fprintln(out, "✔ válido")
	return nil
}

func completeDigits(kind validation.Kind, raw string) (string, error) {
	base := mask.Digits(raw)
	var (
		digits string
		err    error
	)
	switch kind {
	case validation.KindCPF:
		digits, err = checksum.CPFCheckDigits(base)
	case validation.KindCNPJ:
		digits, err = checksum.CNPJCheckDigits(base)
	default:
		return "", errors.New("--complete only applies to cpf and cnpj")
	}
	if err != nil {
		return "", err
	}
	return base + digits, nil
}
