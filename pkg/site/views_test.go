package site

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/atoshub/go-site/pkg/contact"
	"github.com/atoshub/go-site/pkg/simulator"
)

func TestFormatDate(t *testing.T) {
	cases := map[string]time.Time{
		"05 de março de 2024":    time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		"31 de dezembro de 2023": time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		"":                       {},
	}
	for want, in := range cases {
		if got := formatDate(in); got != want {
			t.Fatalf("formatDate(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPageNumbers(t *testing.T) {
	if diff := cmp.Diff([]any{1, 2, 3}, pageNumbers(3)); diff != "" {
		t.Fatalf("page numbers mismatch (-want +got):\n%s", diff)
	}
	if got := pageNumbers(0); len(got) != 0 {
		t.Fatalf("expected no pages, got %v", got)
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrap: %w", contact.ErrSubmitInFlight), http.StatusConflict, CodeBusy},
		{contact.ErrUnknownType, http.StatusUnprocessableEntity, CodeInvalidRequest},
		{contact.ErrUnknownSolution, http.StatusNotFound, CodeNotFound},
		{simulator.ErrOutOfRange, http.StatusUnprocessableEntity, CodeOutOfRange},
		{errors.New("secret detail"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		got := mapError(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("mapError(%v) = %d %s, want %d %s", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
	if got := mapError(errors.New("secret detail")); got.Message != "Erro interno." {
		t.Fatalf("internal errors must not leak, got %q", got.Message)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := cssVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != ":root{--a:1;--b:2;}" {
		t.Fatalf("unexpected style %q", got)
	}
	if cssVarsStyle(nil) != "" {
		t.Fatalf("expected empty style for no vars")
	}
}
