package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atoshub/go-site/pkg/simulator"
)

func (a *app) simulateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run the credit and mortgage simulators",
	}
	c.PersistentFlags().Bool("json", false, "Print the result as JSON")
	c.AddCommand(a.simulateCreditCmd(), a.simulateMortgageCmd())
	return c
}

func (a *app) simulateCreditCmd() *cobra.Command {
	var req simulator.CreditRequest
	c := &cobra.Command{
		Use:   "credit",
		Short: "Simulate a fixed instalment loan",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			result, err := simulator.SimulateCredit(simulator.DefaultCreditLimits(), req)
			if err != nil {
				return err
			}
			if asJSON, _ := c.Flags().GetBool("json"); asJSON {
				return printJSON(c.OutOrStdout(), result)
			}
			return printRows(c.OutOrStdout(), [][2]string{
				{"Valor", simulator.FormatBRL(result.Amount)},
				{"Prazo", fmt.Sprintf("%d meses", result.Months)},
				{"Taxa", fmt.Sprintf("%.2f%% a.m.", result.MonthlyRatePercent)},
				{"Parcela", simulator.FormatBRL(result.Instalment)},
				{"Total", simulator.FormatBRL(result.Total)},
				{"Juros", simulator.FormatBRL(result.Interest)},
			})
		},
	}
	c.Flags().Float64Var(&req.Amount, "amount", 50000, "Loan amount in reais")
	c.Flags().IntVar(&req.Months, "months", 24, "Number of monthly instalments")
	return c
}

func (a *app) simulateMortgageCmd() *cobra.Command {
	var (
		req    simulator.MortgageRequest
		system string
	)
	c := &cobra.Command{
		Use:   "mortgage",
		Short: "Simulate a real estate loan",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			parsed, err := simulator.ParseSystem(system)
			if err != nil {
				return err
			}
			req.System = parsed
			result, err := simulator.SimulateMortgage(simulator.DefaultMortgageLimits(), req)
			if err != nil {
				return err
			}
			if asJSON, _ := c.Flags().GetBool("json"); asJSON {
				return printJSON(c.OutOrStdout(), result)
			}
			return printRows(c.OutOrStdout(), [][2]string{
				{"Sistema", string(result.System)},
				{"Financiado", simulator.FormatBRL(result.Loan)},
				{"Prazo", fmt.Sprintf("%d meses", result.Months)},
				{"Primeira parcela", simulator.FormatBRL(result.FirstInstalment)},
				{"Última parcela", simulator.FormatBRL(result.LastInstalment)},
				{"Total", simulator.FormatBRL(result.Total)},
				{"Juros", simulator.FormatBRL(result.Interest)},
			})
		},
	}
	c.Flags().Float64Var(&req.PropertyValue, "property-value", 400000, "Property value in reais")
	c.Flags().Float64Var(&req.DownPayment, "down-payment", 80000, "Down payment in reais")
	c.Flags().IntVar(&req.Years, "years", 30, "Loan term in years")
	c.Flags().StringVar(&system, "system", string(simulator.SystemSAC), "Amortisation system: sac or price")
	return c
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRows(w io.Writer, rows [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
