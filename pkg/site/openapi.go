package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed assets
var assets embed.FS

const openAPIPath = "assets/openapi.yaml"

// Operation is one documented API operation.
type Operation struct {
	ID     string
	Method string
	Path   string
}

// apiDoc holds the parsed API document and its router.
type apiDoc struct {
	raw    []byte
	doc    *openapi3.T
	router routers.Router
}

// OpenAPIDocument returns the embedded API description.
func OpenAPIDocument() ([]byte, error) {
	return assets.ReadFile(openAPIPath)
}

func loadAPI(ctx context.Context) (*apiDoc, error) {
	raw, err := OpenAPIDocument()
	if err != nil {
		return nil, fmt.Errorf("site: read api document: %w", err)
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("site: load api document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("site: validate api document: %w", err)
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("site: build api router: %w", err)
	}
	return &apiDoc{raw: raw, doc: doc, router: router}, nil
}

// Operations lists the documented operations sorted by ID.
func Operations(ctx context.Context) ([]Operation, error) {
	api, err := loadAPI(ctx)
	if err != nil {
		return nil, err
	}
	var out []Operation
	for path, item := range api.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// validate rejects API requests that do not match the document. Requests
// the document does not describe pass through so the mux can answer them.
func (a *apiDoc) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		route, params, err := a.router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest, "Requisição inválida.", requestErrorDetails(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestErrorDetails(err error) map[string]string {
	details := map[string]string{}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			details["parameter"] = reqErr.Parameter.Name
		}
		if reqErr.RequestBody != nil {
			details["body"] = "invalid"
		}
		if reqErr.Reason != "" {
			details["reason"] = reqErr.Reason
		} else if reqErr.Err != nil {
			details["reason"] = reqErr.Err.Error()
		}
		return details
	}
	details["reason"] = err.Error()
	return details
}
