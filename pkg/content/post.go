package content

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/atoshub/go-site/pkg/portabletext"
)

// Defaults applied by Normalize when the store omits a value.
const (
	DefaultCategory = "Geral"
	DefaultAuthor   = "Equipe Atos Hub"
	DefaultReadTime = "5 min"
	DefaultImageURL = "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=500&fit=crop"
)

// Post is the normalised blog post handed to pages.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     Content   `json:"content"`
	Slug        string    `json:"slug"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	ReadTime    string    `json:"readTime"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
}

// Content is either rich content blocks or plain text.
type Content struct {
	Text   string
	Blocks []portabletext.Block
}

// IsRich reports whether the content carries blocks.
func (c Content) IsRich() bool {
	return len(c.Blocks) > 0
}

// IsEmpty reports whether there is no content at all.
func (c Content) IsEmpty() bool {
	return len(c.Blocks) == 0 && strings.TrimSpace(c.Text) == ""
}

// MarshalJSON encodes blocks as an array and text as a string.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsRich() {
		return json.Marshal(c.Blocks)
	}
	if c.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts an array of blocks, a string or null.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return nil
	case trimmed[0] == '[':
		return json.Unmarshal(trimmed, &c.Blocks)
	default:
		return json.Unmarshal(trimmed, &c.Text)
	}
}

// RawPost is a post document as projected by the queries. Author and
// category accept both reference projections and plain strings.
type RawPost struct {
	ID          string               `json:"_id"`
	AltID       string               `json:"id"`
	Title       string               `json:"title"`
	Excerpt     string               `json:"excerpt"`
	Slug        string               `json:"slug"`
	Author      named                `json:"author"`
	PublishedAt string               `json:"publishedAt"`
	ReadTime    string               `json:"readTime"`
	Categories  []named              `json:"categories"`
	Category    named                `json:"category"`
	ImageURL    string               `json:"imageUrl"`
	Body        []portabletext.Block `json:"body"`
	Content     Content              `json:"content"`
}

// named decodes either `"x"`, `{"name":"x"}` or `{"title":"x"}`.
type named string

func (n *named) UnmarshalJSON(data []byte) error {
	*n = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = named(s)
		return nil
	}
	var obj struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	if obj.Name != "" {
		*n = named(obj.Name)
	} else {
		*n = named(obj.Title)
	}
	return nil
}

// Normalize converts a raw document into a Post, filling defaults. now is
// used when the document has no parseable publish time.
func Normalize(raw RawPost, now time.Time) Post {
	post := Post{
		ID:       raw.ID,
		Title:    raw.Title,
		Excerpt:  raw.Excerpt,
		Slug:     raw.Slug,
		Author:   string(raw.Author),
		ReadTime: raw.ReadTime,
		ImageURL: raw.ImageURL,
	}
	if post.ID == "" {
		post.ID = raw.AltID
	}

	switch {
	case len(raw.Categories) > 0:
		post.Category = string(raw.Categories[0])
	case raw.Category != "":
		post.Category = string(raw.Category)
	}
	if post.Category == "" {
		post.Category = DefaultCategory
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	if post.ReadTime == "" {
		post.ReadTime = DefaultReadTime
	}
	if post.ImageURL == "" {
		post.ImageURL = DefaultImageURL
	}

	post.PublishedAt = now.UTC()
	if raw.PublishedAt != "" {
		if ts, err := time.Parse(time.RFC3339, raw.PublishedAt); err == nil {
			post.PublishedAt = ts
		}
	}

	if len(raw.Body) > 0 {
		post.Content = Content{Blocks: raw.Body}
	} else {
		post.Content = raw.Content
	}
	return post
}
