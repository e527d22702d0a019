package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/atoshub/go-site/internal/leadlog"
)

func (a *app) leadsCmd() *cobra.Command {
	var (
		limit int
		since time.Duration
	)
	c := &cobra.Command{
		Use:   "leads",
		Short: "Show recent form relay attempts from the lead log",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if a.cfg.LeadLog.Path == "" {
				return errors.New("lead log not configured (set leadlog.path or ATOSHUB_LEADLOG)")
			}
			leads, err := leadlog.Open(a.cfg.LeadLog.Path)
			if err != nil {
				return err
			}
			defer leads.Close()

			ctx := c.Context()
			stats, err := leads.Stats(ctx, time.Now().Add(-since))
			if err != nil {
				return err
			}
			attempts, err := leads.Recent(ctx, limit)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "%d tentativas, %d enviadas, %d com falha (últimos %s)\n",
				stats.Total, stats.Succeeded, stats.Failed(), since)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, at := range attempts {
				status := "ok"
				if !at.Succeeded() {
					status = "falha"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					at.At.Local().Format(time.DateTime), at.ID, at.Status, status, at.Subject, at.Err)
			}
			return tw.Flush()
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "Number of attempts to list")
	c.Flags().DurationVar(&since, "since", 24*time.Hour, "Window for the summary counts")
	return c
}
