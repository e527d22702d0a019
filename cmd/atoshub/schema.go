package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atoshub/go-site/pkg/cms"
)

func (a *app) schemaCmd() *cobra.Command {
	var check string
	c := &cobra.Command{
		Use:   "schema",
		Short: "Print the blog post document schema as YAML",
		Long:  `Prints the CMS post schema. With --check, loads a schema file instead and reports whether it parses.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if check != "" {
				data, err := os.ReadFile(check)
				if err != nil {
					return err
				}
				doc, err := cms.LoadSchema(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "%s: %d campos\n", doc.Name, len(doc.Fields))
				return nil
			}
			data, err := cms.EncodeYAML(cms.PostSchema())
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
	c.Flags().StringVar(&check, "check", "", "Schema file to load and check")
	return c
}
