package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/relay"
	"github.com/atoshub/go-site/pkg/simulator"
)

// Error codes used in JSON error envelopes.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidForm      = "invalid_form"
	CodeOutOfRange       = "out_of_range"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeRelayRejected    = "relay_rejected"
	CodeRelayUnavailable = "relay_unavailable"
	CodeBusy             = "submission_in_flight"
	CodeInternal         = "internal"
)

// DomainError is an error that knows how it is reported over HTTP.
type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message, Details: details}})
}

func writeDomainError(w http.ResponseWriter, err error) {
	de := mapError(err)
	writeError(w, de.Status, de.Code, de.Message, de.Details)
}

// mapError converts package errors into their HTTP shape. Unknown errors are
// reported as internal without leaking their text.
func mapError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	var submitErr *relay.SubmitError
	switch {
	case errors.As(err, &submitErr):
		return domainError(http.StatusBadGateway, CodeRelayRejected, relay.RetryMessage, submitErr.Messages)
	case errors.Is(err, relay.ErrUnavailable):
		return domainError(http.StatusBadGateway, CodeRelayUnavailable, relay.RetryMessage, nil)
	case errors.Is(err, contact.ErrSubmitInFlight):
		return domainError(http.StatusConflict, CodeBusy, "Envio em andamento.", nil)
	case errors.Is(err, contact.ErrUnknownType),
		errors.Is(err, contact.ErrUnknownInterest),
		errors.Is(err, contact.ErrNotContactForm):
		return domainError(http.StatusUnprocessableEntity, CodeInvalidRequest, err.Error(), nil)
	case errors.Is(err, contact.ErrUnknownSolution):
		return domainError(http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, simulator.ErrOutOfRange):
		return domainError(http.StatusUnprocessableEntity, CodeOutOfRange, err.Error(), nil)
	default:
		return domainError(http.StatusInternalServerError, CodeInternal, "Erro interno.", nil)
	}
}
