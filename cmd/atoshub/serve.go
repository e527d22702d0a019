package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/site"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog and the site API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			return a.runServe(c, addr)
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to the configured addr)")
	return c
}

func (a *app) runServe(c *cobra.Command, addr string) error {
	ctx := c.Context()
	svc, err := a.newServices(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.close(); err != nil {
			a.logger.Warn("closing services", zap.Error(err))
		}
	}()

	selector, err := site.NewThemeSelector(site.DefaultThemeName, site.DefaultThemeVariant, site.DefaultManifest())
	if err != nil {
		return err
	}
	srv, err := site.New(
		site.WithContent(svc.content),
		site.WithSender(svc.relay),
		site.WithSchema(a.schema()),
		site.WithThemeSelector(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant),
		site.WithImages(a.cfg.Sanity.ProjectID, a.cfg.Sanity.Dataset),
		site.WithLogger(a.logger.Named("site")),
	)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}

	a.logger.Info("starting site",
		zap.String("addr", addr),
		zap.String("relay", svc.relay.Endpoint()),
		zap.String("theme", srv.Theme().Theme),
		zap.Bool("leadlog", svc.leads != nil),
	)
	return srv.ListenAndServe(ctx, addr)
}
