package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRejected marks a relay response outside the 2xx range.
	ErrRejected = errors.New("relay: submission rejected")
	// ErrUnavailable marks a transport failure before any response arrived.
	ErrUnavailable = errors.New("relay: endpoint unavailable")
)

// RetryMessage is the generic banner shown for any submission failure.
const RetryMessage = "Ocorreu um erro ao enviar sua mensagem. Por favor, tente novamente."

// SubmitError carries the relay's status and the normalised messages it
// returned.
type SubmitError struct {
	Status   int
	Messages []string
	Fields   map[string][]string
}

func (e *SubmitError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("relay: submission rejected with status %d", e.Status)
	}
	return fmt.Sprintf("relay: submission rejected with status %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

func (e *SubmitError) Unwrap() error {
	return ErrRejected
}

// ErrorMapping splits a relay error body into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Messages flattens the mapping into de-duplicated display messages: form
// messages first, then field messages prefixed with their field in name
// order.
func (m ErrorMapping) Messages() []string {
	out := append([]string(nil), m.Form...)
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range m.Fields[name] {
			out = append(out, name+": "+msg)
		}
	}
	return normalizeMessages(out)
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

type errorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// DecodeErrorBody parses a relay error response. Bodies that are not JSON
// become a single form-level message when they carry text.
func DecodeErrorBody(raw []byte) ErrorMapping {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		text := strings.TrimSpace(string(raw))
		if text == "" || strings.HasPrefix(text, "<") {
			return ErrorMapping{}
		}
		return ErrorMapping{Form: normalizeMessages([]string{text})}
	}

	payload := make(map[string][]string)
	if body.Error != "" {
		payload[""] = append(payload[""], body.Error)
	}
	for _, item := range body.Errors {
		msg := item.Message
		if msg == "" {
			msg = item.Code
		}
		payload[item.Field] = append(payload[item.Field], msg)
	}
	return MapErrorPayload(nil, payload)
}

// MapErrorPayload normalises error payload paths (dotted, slash or JSON
// pointer style) into field names. Paths that do not resolve to one of
// fields are reported at form level so no message is lost. A nil field
// list accepts any single-segment path.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, formLevel := mapErrorPath(rawPath, known, fields == nil)
		if formLevel {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}, acceptAny bool) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", true
	}
	for _, segment := range segments {
		if _, ok := known[segment]; ok {
			return segment, false
		}
	}
	if acceptAny && len(segments) == 1 {
		return segments[0], false
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"payload": {},
		"data":    {},
		"fields":  {},
	}
	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
