package site

import (
	"fmt"
	"time"

	"github.com/atoshub/go-site/pkg/content"
	"github.com/atoshub/go-site/pkg/portabletext"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// formatDate renders t as "05 de março de 2024".
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

type postView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	URL      string `json:"url"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	ISODate  string `json:"isoDate"`
	ReadTime string `json:"readTime"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
	HTML     string `json:"html,omitempty"`
}

func (s *Server) postView(p content.Post, withBody bool) postView {
	v := postView{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		URL:      "/blog/" + p.Slug,
		Excerpt:  p.Excerpt,
		Author:   p.Author,
		Date:     formatDate(p.PublishedAt),
		ReadTime: p.ReadTime,
		Category: p.Category,
		ImageURL: p.ImageURL,
	}
	if !p.PublishedAt.IsZero() {
		v.ISODate = p.PublishedAt.Format(time.RFC3339)
	}
	if withBody {
		v.HTML = s.bodyHTML(p.Content)
	}
	return v
}

func (s *Server) postViews(posts []content.Post) []postView {
	out := make([]postView, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.postView(p, false))
	}
	return out
}

// bodyHTML renders rich content through the portable text renderer and
// plain text line by line.
func (s *Server) bodyHTML(c content.Content) string {
	if c.IsRich() {
		return portabletext.ToHTML(c.Blocks, s.images)
	}
	return portabletext.TextToHTML(c.Text)
}

func pageNumbers(total int) []any {
	out := make([]any, total)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
