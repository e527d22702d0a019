package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/content"
	"github.com/atoshub/go-site/pkg/form"
	"github.com/atoshub/go-site/pkg/simulator"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/blog", http.StatusFound)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = content.AllCategories
	}
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))

	posts := content.Filter(s.content.AllPosts(r.Context()), query, category)
	page := content.Paginate(posts, number, content.PostsPerPage)

	categories := append([]string{content.AllCategories}, content.FilterCategories...)
	s.renderPage(w, http.StatusOK, "pages.blog", map[string]any{
		"posts":       s.postViews(page.Posts),
		"query":       query,
		"category":    category,
		"categories":  categories,
		"page":        page.Number,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
		"hasPrev":     page.HasPrev(),
		"hasNext":     page.HasNext(),
		"prevPage":    page.Number - 1,
		"nextPage":    page.Number + 1,
		"pageNumbers": pageNumbers(page.TotalPages),
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.content.PostBySlug(r.Context(), r.PathValue("slug"))
	if !ok {
		s.renderPage(w, http.StatusNotFound, "pages.notfound", nil)
		return
	}
	related := s.content.RelatedPosts(r.Context(), post, content.DefaultRelatedLimit)
	s.renderPage(w, http.StatusOK, "pages.post", map[string]any{
		"post":    s.postView(post, true),
		"related": s.postViews(related),
	})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	posts := content.Filter(s.content.AllPosts(r.Context()), r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, content.Paginate(posts, number, content.PostsPerPage))
}

type postResponse struct {
	Post    content.Post   `json:"post"`
	HTML    string         `json:"html"`
	Related []content.Post `json:"related"`
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.content.PostBySlug(r.Context(), r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, "Artigo não encontrado.", nil)
		return
	}
	related := s.content.RelatedPosts(r.Context(), post, content.DefaultRelatedLimit)
	if related == nil {
		related = []content.Post{}
	}
	writeJSON(w, http.StatusOK, postResponse{Post: post, HTML: s.bodyHTML(post.Content), Related: related})
}

type contactRequest struct {
	ContactType string            `json:"contactType"`
	Solution    string            `json:"solution"`
	Interest    string            `json:"interest"`
	Fields      map[string]string `json:"fields"`
}

type contactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Next    string `json:"next,omitempty"`
}

// handleContact runs the same pipeline as the browser form: every known
// field goes through Change, then Submit validates all of them before
// relaying. Unknown fields are ignored.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "JSON inválido.", nil)
		return
	}

	session, err := s.newSession(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	f := session.Form()
	for _, name := range f.Names() {
		if value, ok := req.Fields[name]; ok {
			_ = f.Change(name, value)
		}
	}

	// A submission already handed to the relay is not cancelled when the
	// client goes away.
	receipt, err := session.Submit(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, contact.ErrInvalidForm):
		writeError(w, http.StatusUnprocessableEntity, CodeInvalidForm, contact.InvalidFormMessage, f.Errors())
		return
	case err != nil:
		s.logger.Warn("contact relay failed", zap.Error(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, contactResponse{
		ID:      receipt.ID,
		Message: contact.SuccessMessage,
		Next:    receipt.Next,
	})
}

func (s *Server) newSession(req contactRequest) (*contact.Session, error) {
	opts := []contact.Option{contact.WithLogger(s.logger)}
	if req.Solution != "" {
		solution, err := contact.FindSolution(req.Solution)
		if err != nil {
			return nil, err
		}
		session := contact.NewSolutionSession(s.schema, s.sender, solution, opts...)
		if req.Interest != "" {
			if err := session.SetInterest(req.Interest); err != nil {
				return nil, err
			}
		}
		return session, nil
	}

	t := contact.TypePersonal
	if req.ContactType != "" {
		parsed, err := contact.ParseType(req.ContactType)
		if err != nil {
			return nil, err
		}
		t = parsed
	}
	return contact.NewContactSession(s.schema, s.sender, t, opts...)
}

type validateRequest struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
}

type validateResponse struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched"`
}

// handleValidate mirrors the change and blur events for one field: the value
// is always formatted, and validated only when the field is touched.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "JSON inválido.", nil)
		return
	}

	f := form.New(s.schema, form.Fields(req.Field), nil)
	_ = f.Change(req.Field, req.Value)
	if req.Touched {
		_ = f.Blur(req.Field)
	}
	kind, _ := f.Kind(req.Field)
	st := f.State(req.Field)
	writeJSON(w, http.StatusOK, validateResponse{
		Field:   req.Field,
		Kind:    kind.String(),
		Value:   st.Value,
		Error:   st.Visible(),
		Touched: st.Touched,
	})
}

type creditResponse struct {
	simulator.CreditResult
	Formatted map[string]string `json:"formatted"`
}

func (s *Server) handleSimulateCredit(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreditRequest(r, simulator.CreditRequest{})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	result, err := simulator.SimulateCredit(s.credit, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditResponse{
		CreditResult: result,
		Formatted: map[string]string{
			"instalment": simulator.FormatBRL(result.Instalment),
			"total":      simulator.FormatBRL(result.Total),
			"interest":   simulator.FormatBRL(result.Interest),
		},
	})
}

type mortgageResponse struct {
	simulator.MortgageResult
	Formatted map[string]string `json:"formatted"`
}

func (s *Server) handleSimulateMortgage(w http.ResponseWriter, r *http.Request) {
	req, err := parseMortgageRequest(r, simulator.MortgageRequest{})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	result, err := simulator.SimulateMortgage(s.mortgage, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mortgageResponse{
		MortgageResult: result,
		Formatted: map[string]string{
			"firstInstalment": simulator.FormatBRL(result.FirstInstalment),
			"lastInstalment":  simulator.FormatBRL(result.LastInstalment),
			"total":           simulator.FormatBRL(result.Total),
			"interest":        simulator.FormatBRL(result.Interest),
			"loan":            simulator.FormatBRL(result.Loan),
		},
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.api.raw)
}
