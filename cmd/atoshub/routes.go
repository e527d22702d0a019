package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atoshub/go-site/pkg/site"
)

func (a *app) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the operations of the site API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ops, err := site.Operations(c.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range ops {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Method, op.Path, op.ID)
			}
			return tw.Flush()
		},
	}
}
