// Package config loads the site configuration from an optional YAML file and
// overlays environment variables on top of it. Environment always wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atoshub/go-site/pkg/content"
	"github.com/atoshub/go-site/pkg/relay"
)

// ErrInvalidValue is returned when a config value is invalid.
var ErrInvalidValue = errors.New("invalid config value")

// Environment variables read by Load.
const (
	EnvAddr             = "ATOSHUB_ADDR"
	EnvFormEndpoint     = "ATOSHUB_FORM_ENDPOINT"
	EnvSanityProjectID  = "SANITY_PROJECT_ID"
	EnvSanityDataset    = "SANITY_DATASET"
	EnvSanityAPIVersion = "SANITY_API_VERSION"
	EnvSanityUseCDN     = "SANITY_USE_CDN"
	EnvSanityToken      = "SANITY_TOKEN"
	EnvRedisURL         = "REDIS_URL"
	EnvLeadLog          = "ATOSHUB_LEADLOG"
	EnvLocale           = "ATOSHUB_LOCALE"
	EnvTheme            = "ATOSHUB_THEME"
	EnvThemeVariant     = "ATOSHUB_THEME_VARIANT"
)

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultAddr         = ":8080"
	DefaultLocale       = "pt-BR"
	DefaultFormTimeout  = 15 * time.Second
	DefaultTheme        = "atoshub"
	DefaultThemeVariant = "light"
)

// Form configures the form relay.
type Form struct {
	Endpoint string        `yaml:"endpoint,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Sanity configures the hosted content store.
type Sanity struct {
	ProjectID  string `yaml:"project_id,omitempty"`
	Dataset    string `yaml:"dataset,omitempty"`
	APIVersion string `yaml:"api_version,omitempty"`
	UseCDN     bool   `yaml:"use_cdn,omitempty"`
	Token      string `yaml:"token,omitempty"`
}

// Cache configures content caching. An empty RedisURL keeps the cache in
// process memory.
type Cache struct {
	RedisURL string        `yaml:"redis_url,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// LeadLog configures the submission audit log. An empty Path disables it.
type LeadLog struct {
	Path string `yaml:"path,omitempty"`
}

// Theme selects the go-theme manifest and variant used by the pages.
type Theme struct {
	Name    string `yaml:"name,omitempty"`
	Variant string `yaml:"variant,omitempty"`
}

// Config contains the configuration of the site server and CLI.
type Config struct {
	Addr    string  `yaml:"addr,omitempty"`
	Locale  string  `yaml:"locale,omitempty"`
	Form    Form    `yaml:"form,omitempty"`
	Sanity  Sanity  `yaml:"sanity,omitempty"`
	Cache   Cache   `yaml:"cache,omitempty"`
	LeadLog LeadLog `yaml:"leadlog,omitempty"`
	Theme   Theme   `yaml:"theme,omitempty"`

	// path is the file this config was loaded from
	path string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:   DefaultAddr,
		Locale: DefaultLocale,
		Form: Form{
			Endpoint: relay.DefaultEndpoint,
			Timeout:  DefaultFormTimeout,
		},
		Sanity: Sanity{
			ProjectID:  content.DefaultProjectID,
			Dataset:    content.DefaultDataset,
			APIVersion: content.DefaultAPIVersion,
		},
		Cache: Cache{TTL: content.DefaultTTL},
		Theme: Theme{Name: DefaultTheme, Variant: DefaultThemeVariant},
	}
}

// Load reads path (when non-empty and present) over the defaults and then
// applies the process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("malformed config file %s: %w", path, err)
			}
			cfg.path = path
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks that the configured values can be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidValue)
	}
	if !strings.HasPrefix(c.Form.Endpoint, "http://") && !strings.HasPrefix(c.Form.Endpoint, "https://") {
		return fmt.Errorf("%w: form endpoint must be an http(s) URL, got %q", ErrInvalidValue, c.Form.Endpoint)
	}
	if c.Form.Timeout < 0 {
		return fmt.Errorf("%w: form timeout must not be negative", ErrInvalidValue)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative", ErrInvalidValue)
	}
	if strings.TrimSpace(c.Sanity.ProjectID) == "" || strings.TrimSpace(c.Sanity.Dataset) == "" {
		return fmt.Errorf("%w: sanity project_id and dataset are required", ErrInvalidValue)
	}
	return nil
}

// SanityConfig converts the store settings for the content package.
func (c *Config) SanityConfig() content.SanityConfig {
	return content.SanityConfig{
		ProjectID:  c.Sanity.ProjectID,
		Dataset:    c.Sanity.Dataset,
		APIVersion: c.Sanity.APIVersion,
		UseCDN:     c.Sanity.UseCDN,
		Token:      c.Sanity.Token,
	}
}

// Encode renders the configuration as YAML. The Sanity token is masked.
func (c *Config) Encode() ([]byte, error) {
	out := *c
	if out.Sanity.Token != "" {
		out.Sanity.Token = "****"
	}
	return yaml.Marshal(out)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	strs := map[string]*string{
		EnvAddr:             &c.Addr,
		EnvFormEndpoint:     &c.Form.Endpoint,
		EnvSanityProjectID:  &c.Sanity.ProjectID,
		EnvSanityDataset:    &c.Sanity.Dataset,
		EnvSanityAPIVersion: &c.Sanity.APIVersion,
		EnvSanityToken:      &c.Sanity.Token,
		EnvRedisURL:         &c.Cache.RedisURL,
		EnvLeadLog:          &c.LeadLog.Path,
		EnvLocale:           &c.Locale,
		EnvTheme:            &c.Theme.Name,
		EnvThemeVariant:     &c.Theme.Variant,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvSanityUseCDN); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidValue, EnvSanityUseCDN, v)
		}
		c.Sanity.UseCDN = b
	}
	return nil
}
