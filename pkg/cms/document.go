package cms

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atoshub/go-site/pkg/portabletext"
	"github.com/atoshub/go-site/pkg/validation"
)

// Document is an editable post.
type Document struct {
	ID          string                 `json:"_id,omitempty"`
	Title       string                 `json:"title"`
	Slug        string                 `json:"slug"`
	AuthorName  string                 `json:"author,omitempty"`
	MainImage   *portabletext.ImageRef `json:"mainImage,omitempty"`
	Excerpt     string                 `json:"excerpt,omitempty"`
	Categories  []string               `json:"categories,omitempty"`
	PublishedAt time.Time              `json:"publishedAt"`
	ReadTime    string                 `json:"readTime,omitempty"`
	Status      Status                 `json:"status"`
	Body        []portabletext.Block   `json:"body"`
}

// NewDocument returns a document with the schema's initial values and a slug
// generated from title.
func NewDocument(title string) Document {
	return Document{
		Title:    title,
		Slug:     Slugify(title),
		ReadTime: "5 min",
		Status:   StatusDraft,
	}
}

// IsDraft reports whether the id lives under the drafts path.
func (d Document) IsDraft() bool {
	return strings.HasPrefix(d.ID, "drafts.")
}

func (d Document) present(name string) bool {
	switch name {
	case "title":
		return strings.TrimSpace(d.Title) != ""
	case "slug":
		return strings.TrimSpace(d.Slug) != ""
	case "author":
		return d.AuthorName != ""
	case "mainImage":
		return d.MainImage != nil
	case "excerpt":
		return d.Excerpt != ""
	case "categories":
		return len(d.Categories) > 0
	case "publishedAt":
		return !d.PublishedAt.IsZero()
	case "readTime":
		return d.ReadTime != ""
	case "status":
		return d.Status != ""
	case "body":
		return len(d.Body) > 0
	default:
		return false
	}
}

func (d Document) text(name string) string {
	switch name {
	case "title":
		return d.Title
	case "slug":
		return d.Slug
	case "excerpt":
		return d.Excerpt
	case "readTime":
		return d.ReadTime
	case "status":
		return string(d.Status)
	default:
		return ""
	}
}

// ValidateDocument checks doc against schema: required fields, maximum
// lengths and option lists. Issues follow the schema's field order.
func ValidateDocument(schema DocumentType, doc Document) []validation.Issue {
	var issues []validation.Issue
	for _, field := range schema.Fields {
		if !doc.present(field.Name) {
			if field.Required {
				issues = append(issues, validation.Issue{Field: field.Name, Message: fmt.Sprintf("%s é obrigatório", field.Title)})
			}
			continue
		}
		value := doc.text(field.Name)
		if field.MaxLength > 0 && utf8.RuneCountInString(value) > field.MaxLength {
			issues = append(issues, validation.Issue{
				Field:   field.Name,
				Message: fmt.Sprintf("%s deve ter no máximo %d caracteres", field.Title, field.MaxLength),
			})
			continue
		}
		if len(field.Choices) > 0 && !hasChoice(field.Choices, value) {
			issues = append(issues, validation.Issue{Field: field.Name, Message: fmt.Sprintf("%s inválido", field.Title)})
		}
	}
	return issues
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Preview returns the listing title and subtitle of doc.
func Preview(doc Document) (title, subtitle string) {
	author := ""
	if doc.AuthorName != "" {
		author = "por " + doc.AuthorName
	}
	return doc.Title, author + " - " + doc.Status.Label()
}
