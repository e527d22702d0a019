package site

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme defaults.
const (
	DefaultThemeName    = "atoshub"
	DefaultThemeVariant = "light"
)

// DefaultManifest is the site theme. The dark variant only overrides colour
// tokens.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#0b3d91",
			"accent":     "#f5a623",
			"background": "#ffffff",
			"foreground": "#111827",
			"muted":      "#6b7280",
			"font-body":  "Inter, system-ui, sans-serif",
		},
		Templates: map[string]string{
			"pages.blog":       "blog",
			"pages.post":       "post",
			"pages.notfound":   "not_found",
			"pages.simulators": "simulators",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/atoshub",
			Files: map[string]string{
				"stylesheet": "site.css",
				"logo":       "logo.svg",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"background": "#0f172a",
					"foreground": "#f8fafc",
					"muted":      "#94a3b8",
				},
			},
		},
	}
}

// pageFallbacks name the page templates used when a theme does not override
// them.
func pageFallbacks() map[string]string {
	return map[string]string{
		"pages.blog":       "blog",
		"pages.post":       "post",
		"pages.notfound":   "not_found",
		"pages.simulators": "simulators",
	}
}

// manifestSelector resolves a theme and variant from registered manifests.
// Manifests are also registered with a go-theme registry, which rejects
// invalid or duplicate manifests.
type manifestSelector struct {
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

var _ theme.ThemeSelector = (*manifestSelector)(nil)

// NewThemeSelector registers manifests and returns a selector that falls back
// to defaultTheme/defaultVariant for empty names.
func NewThemeSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (theme.ThemeSelector, error) {
	s := &manifestSelector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := s.registry.Register(m); err != nil {
			return nil, fmt.Errorf("site: register theme %q: %w", m.Name, err)
		}
		s.manifests[m.Name] = m
	}
	if _, ok := s.manifests[defaultTheme]; !ok {
		return nil, fmt.Errorf("site: default theme %q not registered", defaultTheme)
	}
	return s, nil
}

// Select implements theme.ThemeSelector. Unknown variants resolve to the
// base theme.
func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("site: unknown theme %q", name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// rendererConfig flattens a selection: fallbacks, then manifest, then variant
// overrides. Every token becomes a "--token" CSS variable.
func rendererConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant := m.Variants[sel.Variant]

	partials := mergeMaps(fallbacks, m.Templates, variant.Templates)
	tokens := mergeMaps(m.Tokens, variant.Tokens)
	files := mergeMaps(m.Assets.Files, variant.Assets.Files)
	prefix := m.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// themeContext is the "theme" value available to every page.
type themeContext struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	Style      string `json:"style"`
	Stylesheet string `json:"stylesheet"`
	Logo       string `json:"logo"`
}

func newThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL("stylesheet")
		ctx.Logo = cfg.AssetURL("logo")
	}
	return ctx
}

// cssVarsStyle renders vars as a sorted ":root{...}" rule.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}

func mergeMaps(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	return out
}
