package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/content"
	"github.com/atoshub/go-site/pkg/portabletext"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/render/template"
	"github.com/atoshub/go-site/pkg/render/template/gotemplate"
	"github.com/atoshub/go-site/pkg/simulator"
	"github.com/atoshub/go-site/pkg/validation"
)

// SiteName is shown in page titles and the footer.
const SiteName = "Atos Hub"

const siteDescription = "Soluções financeiras para pessoas e empresas."

// Option configures a Server.
type Option func(*Server)

// WithContent sets the blog content client.
func WithContent(client *content.Client) Option {
	return func(s *Server) {
		if client != nil {
			s.content = client
		}
	}
}

// WithSender sets the relay used by the contact endpoint.
func WithSender(sender relay.Sender) Option {
	return func(s *Server) {
		if sender != nil {
			s.sender = sender
		}
	}
}

// WithSchema overrides the field validation schema.
func WithSchema(schema validation.Schema) Option {
	return func(s *Server) {
		s.schema = schema
		s.schemaSet = true
	}
}

// WithRenderer overrides the page template engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithThemeSelector resolves the page theme through selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *Server) {
		if selector != nil {
			s.selector = selector
		}
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithImages sets the content store project used to build image URLs.
func WithImages(projectID, dataset string) Option {
	return func(s *Server) {
		s.images.ProjectID = projectID
		s.images.Dataset = dataset
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server serves the blog pages and the site API.
type Server struct {
	content      *content.Client
	sender       relay.Sender
	schema       validation.Schema
	schemaSet    bool
	renderer     template.TemplateRenderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	theme        *theme.RendererConfig
	images       portabletext.Options
	credit       simulator.CreditLimits
	mortgage     simulator.MortgageLimits
	logger       *zap.Logger
	now          func() time.Time
	api          *apiDoc
	public       fs.FS
}

// New builds a Server. Without options it serves an empty blog and relays
// contact submissions to relay.DefaultEndpoint.
func New(options ...Option) (*Server, error) {
	s := &Server{
		logger:   zap.NewNop(),
		now:      time.Now,
		credit:   simulator.DefaultCreditLimits(),
		mortgage: simulator.DefaultMortgageLimits(),
		images: portabletext.Options{
			ProjectID: content.DefaultProjectID,
			Dataset:   content.DefaultDataset,
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if !s.schemaSet {
		s.schema = validation.DefaultSchema()
	}
	if s.content == nil {
		s.content = content.NewClient(nil, content.WithLogger(s.logger))
	}
	if s.sender == nil {
		s.sender = relay.New(relay.DefaultEndpoint, relay.WithLogger(s.logger))
	}

	api, err := loadAPI(context.Background())
	if err != nil {
		return nil, err
	}
	s.api = api

	public, err := fs.Sub(assets, "assets/public")
	if err != nil {
		return nil, fmt.Errorf("site: public assets: %w", err)
	}
	s.public = public

	if err := s.setupTheme(); err != nil {
		return nil, err
	}
	if err := s.setupRenderer(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupTheme() error {
	if s.selector == nil {
		selector, err := NewThemeSelector(DefaultThemeName, DefaultThemeVariant, DefaultManifest())
		if err != nil {
			return err
		}
		s.selector = selector
	}
	selection, err := s.selector.Select(s.themeName, s.themeVariant)
	if err != nil {
		return fmt.Errorf("site: select theme: %w", err)
	}
	s.theme = rendererConfig(selection, pageFallbacks())
	return nil
}

func (s *Server) setupRenderer() error {
	if s.renderer == nil {
		templates, err := fs.Sub(assets, "assets/templates")
		if err != nil {
			return fmt.Errorf("site: templates: %w", err)
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(templates),
			gotemplate.WithSetName("site"),
			gotemplate.WithPreHook(markCurrentPage),
		)
		if err != nil {
			return err
		}
		s.renderer = engine
	}

	if err := s.renderer.RegisterFilter("brl", filterBRL); err != nil && !errors.Is(err, gotemplate.ErrFilterExists) {
		return fmt.Errorf("site: register brl filter: %w", err)
	}

	return s.renderer.GlobalContext(map[string]any{
		"theme": newThemeContext(s.theme),
		"site": map[string]any{
			"name":        SiteName,
			"description": siteDescription,
			"year":        s.now().Year(),
		},
	})
}

// markCurrentPage exposes the template being rendered as "current" so the
// layout can flag the active navigation link.
func markCurrentPage(hctx *gotemplatepkg.HookContext) error {
	data, ok := hctx.Data.(map[string]any)
	if !ok && hctx.Data != nil {
		return nil
	}
	next := make(map[string]any, len(data)+1)
	for key, value := range data {
		next[key] = value
	}
	next["current"] = hctx.TemplateName
	hctx.Data = next
	return nil
}

// Theme returns the resolved page theme.
func (s *Server) Theme() *theme.RendererConfig {
	return s.theme
}

// Handler returns the routed handler with request validation and logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /blog", s.handleBlog)
	mux.HandleFunc("GET /blog/{slug}", s.handlePost)
	mux.HandleFunc("GET /simuladores", s.handleSimulators)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.public)))
	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("GET /api/posts/{slug}", s.handleGetPost)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /api/simulate/credit", s.handleSimulateCredit)
	mux.HandleFunc("GET /api/simulate/mortgage", s.handleSimulateMortgage)
	mux.HandleFunc("GET /api/openapi.yaml", s.handleOpenAPI)
	return s.logRequests(s.api.validate(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("site listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("site shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("site: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data map[string]any) {
	name := pageFallbacks()[page]
	if s.theme != nil && s.theme.Partials[page] != "" {
		name = s.theme.Partials[page]
	}

	var buf bytes.Buffer
	if _, err := s.renderer.RenderTemplate(name, data, &buf); err != nil {
		s.logger.Error("render page failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "Erro interno.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}

func filterBRL(input any, _ any) (any, error) {
	switch v := input.(type) {
	case float64:
		return simulator.FormatBRL(v), nil
	case int:
		return simulator.FormatBRL(float64(v)), nil
	case nil:
		return "", nil
	default:
		return nil, fmt.Errorf("brl: unsupported value %T", input)
	}
}
