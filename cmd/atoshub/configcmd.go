package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Prints the configuration after the file and the environment are applied. The content store token is masked.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			data, err := a.cfg.Encode()
			if err != nil {
				return err
			}
			if path := a.cfg.Path(); path != "" {
				fmt.Fprintf(c.OutOrStdout(), "# %s\n", path)
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
}
