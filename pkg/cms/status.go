package cms

import (
	"fmt"
	"strings"
)

// Status is the editorial state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists the states in the order editors see them.
func Statuses() []Status {
	return []Status{StatusDraft, StatusPublished, StatusArchived}
}

// Label returns the Portuguese label. Unknown values read as archived.
func (s Status) Label() string {
	switch s {
	case StatusPublished:
		return "Publicado"
	case StatusDraft:
		return "Rascunho"
	default:
		return "Arquivado"
	}
}

// ParseStatus resolves a status value.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusDraft, StatusPublished, StatusArchived:
		return s, nil
	default:
		return "", fmt.Errorf("cms: unknown status %q", raw)
	}
}
