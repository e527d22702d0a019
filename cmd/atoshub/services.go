package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atoshub/go-site/internal/leadlog"
	"github.com/atoshub/go-site/pkg/content"
	"github.com/atoshub/go-site/pkg/relay"
)

// services are the runtime dependencies built from the config. close
// releases them in reverse order of creation.
type services struct {
	relay   *relay.Client
	content *content.Client
	leads   *leadlog.Log
	closers []func() error
}

func (s *services) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// relayOptions opens the lead log when configured and returns the relay
// options that record into it.
func (a *app) relayOptions(s *services) ([]relay.Option, error) {
	opts := []relay.Option{
		relay.WithLogger(a.logger.Named("relay")),
		relay.WithHTTPClient(&http.Client{Timeout: a.cfg.Form.Timeout}),
	}
	if a.cfg.LeadLog.Path == "" {
		return opts, nil
	}
	leads, err := leadlog.Open(a.cfg.LeadLog.Path)
	if err != nil {
		return nil, err
	}
	s.leads = leads
	s.closers = append(s.closers, leads.Close)
	return append(opts, relay.WithRecorder(leads)), nil
}

func (a *app) newRelayServices() (*services, error) {
	s := &services{}
	opts, err := a.relayOptions(s)
	if err != nil {
		return nil, err
	}
	s.relay = relay.New(a.cfg.Form.Endpoint, opts...)
	return s, nil
}

// newServices builds the relay and the content client. The content cache
// lives in Redis when a URL is configured and in memory otherwise.
func (a *app) newServices(ctx context.Context) (*services, error) {
	s, err := a.newRelayServices()
	if err != nil {
		return nil, err
	}

	var cache content.Cache = content.NewMemoryCache()
	if url := a.cfg.Cache.RedisURL; url != "" {
		redisCache, err := content.NewRedisCache(ctx, url)
		if err != nil {
			_ = s.close()
			return nil, fmt.Errorf("content cache: %w", err)
		}
		s.closers = append(s.closers, redisCache.Close)
		cache = redisCache
		a.logger.Debug("content cache in redis")
	}

	store := content.NewSanityStore(a.cfg.SanityConfig(), nil)
	s.content = content.NewClient(store,
		content.WithCache(cache),
		content.WithTTL(a.cfg.Cache.TTL),
		content.WithLogger(a.logger.Named("content")),
	)
	a.logger.Debug("content store ready", zap.String("endpoint", store.Endpoint()))
	return s, nil
}
