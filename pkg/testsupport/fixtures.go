package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/atoshub/go-site/pkg/relay"
)

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// RecordingSender is a relay.Sender that stores every payload and answers
// with Err when set.
type RecordingSender struct {
	mu       sync.Mutex
	Err      error
	payloads []relay.Payload
}

// Send implements relay.Sender.
func (s *RecordingSender) Send(_ context.Context, payload relay.Payload) (relay.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(relay.Payload, len(payload))
	for k, v := range payload {
		copied[k] = v
	}
	s.payloads = append(s.payloads, copied)
	if s.Err != nil {
		return relay.Receipt{Status: 500}, s.Err
	}
	return relay.Receipt{ID: "test-attempt", Status: 200}, nil
}

// Payloads returns the payloads sent so far.
func (s *RecordingSender) Payloads() []relay.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relay.Payload(nil), s.payloads...)
}

// StaticStore is a content store answering each query text with canned JSON.
// Unknown queries answer null.
type StaticStore struct {
	Results map[string]string
	Err     error
}

// Query decodes the canned result for query into out.
func (s StaticStore) Query(_ context.Context, query string, _ map[string]any, out any) error {
	if s.Err != nil {
		return s.Err
	}
	raw, ok := s.Results[query]
	if !ok {
		raw = "null"
	}
	return json.Unmarshal([]byte(raw), out)
}
