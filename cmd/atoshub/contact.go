package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/prompt"
)

func (a *app) contactCmd() *cobra.Command {
	var (
		contactType string
		solution    string
	)
	c := &cobra.Command{
		Use:   "contact",
		Short: "Fill and send a contact form from the terminal",
		Long:  `Asks every field of the contact form (or of a solution form with --solution), validates each answer like the site does and sends it to the form relay after confirmation.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return a.runContact(c, contactType, solution)
		},
	}
	c.Flags().StringVarP(&contactType, "type", "t", string(contact.TypePersonal), "Initial contact type: pessoa-fisica, empresa or parceiro")
	c.Flags().StringVarP(&solution, "solution", "s", "", "Solution slug; switches to the solution form")
	return c
}

func (a *app) runContact(c *cobra.Command, contactType, solutionSlug string) error {
	svc, err := a.newRelayServices()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.close(); err != nil {
			a.logger.Warn("closing services", zap.Error(err))
		}
	}()

	opts := []contact.Option{contact.WithLogger(a.logger.Named("contact"))}
	var session *contact.Session
	if solutionSlug != "" {
		solution, err := contact.FindSolution(solutionSlug)
		if err != nil {
			return err
		}
		session = contact.NewSolutionSession(a.schema(), svc.relay, solution, opts...)
	} else {
		t, err := contact.ParseType(contactType)
		if err != nil {
			return err
		}
		if session, err = contact.NewContactSession(a.schema(), svc.relay, t, opts...); err != nil {
			return err
		}
	}

	driver := a.driver
	if driver == nil {
		driver = prompt.NewSurveyDriverWithStdio(os.Stdin, os.Stdout, a.errOut)
	}
	runner := prompt.New(
		prompt.WithPromptDriver(driver),
		prompt.WithLogger(a.logger.Named("prompt")),
		prompt.WithMaxAttempts(5),
	)
	receipt, err := runner.Run(c.Context(), session)
	switch {
	case errors.Is(err, prompt.ErrDeclined):
		fmt.Fprintln(c.OutOrStdout(), "Envio cancelado.")
		return nil
	case err != nil:
		return err
	}
	a.logger.Debug("contact sent", zap.String("attempt", receipt.ID))
	return nil
}
