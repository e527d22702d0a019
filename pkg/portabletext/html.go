package portabletext

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultImageWidth is the width requested for inline images.
	DefaultImageWidth = 800
	defaultImageAlt   = "Imagem do post"
)

// Options configures HTML rendering.
type Options struct {
	ProjectID  string
	Dataset    string
	ImageWidth int
	// Policy overrides the sanitiser applied to the rendered markup.
	Policy *bluemonday.Policy
}

var blockTags = map[string]string{
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"normal":     "p",
	"blockquote": "blockquote",
}

var listTags = map[string]string{
	"bullet": "ul",
	"number": "ol",
}

// Policy returns the sanitiser used for rendered rich content. It allows the
// elements produced by ToHTML and nothing else.
func Policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "h4", "p", "blockquote", "ul", "ol", "li", "strong", "em", "figure", "figcaption", "br")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("mailto", "http", "https")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^noopener noreferrer$`)).OnElements("a")
	p.AllowImages()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z0-9\- ]+$`)).Globally()
	return p
}

// ToHTML renders blocks to sanitised HTML. Unknown block types are skipped,
// as are image blocks without an asset ref.
func ToHTML(blocks []Block, opts Options) string {
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = DefaultImageWidth
	}
	policy := opts.Policy
	if policy == nil {
		policy = Policy()
	}

	var b strings.Builder
	lists := &listStack{b: &b}
	for _, block := range blocks {
		switch {
		case block.IsText() && block.ListItem != "":
			lists.item(block)
		case block.IsText():
			lists.closeAll()
			writeTextBlock(&b, block)
		case block.IsImage():
			lists.closeAll()
			writeImage(&b, block, opts)
		}
	}
	lists.closeAll()

	return policy.Sanitize(b.String())
}

func writeTextBlock(b *strings.Builder, block Block) {
	tag, ok := blockTags[block.Style]
	if !ok {
		tag = "p"
	}
	b.WriteString("<" + tag + ">")
	writeSpans(b, block)
	b.WriteString("</" + tag + ">")
}

func writeImage(b *strings.Builder, block Block, opts Options) {
	if block.Asset == nil || block.Asset.Ref == "" {
		return
	}
	src, err := ImageURL(block.Asset.Ref, opts.ProjectID, opts.Dataset, opts.ImageWidth)
	if err != nil {
		if block.Asset.URL == "" {
			return
		}
		src = block.Asset.URL
	}
	alt := block.Alt
	if alt == "" {
		alt = defaultImageAlt
	}
	b.WriteString(`<figure><img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `">`)
	if block.Alt != "" {
		b.WriteString("<figcaption>" + html.EscapeString(block.Alt) + "</figcaption>")
	}
	b.WriteString("</figure>")
}

func writeSpans(b *strings.Builder, block Block) {
	defs := make(map[string]MarkDef, len(block.MarkDefs))
	for _, def := range block.MarkDefs {
		defs[def.Key] = def
	}
	for _, span := range block.Children {
		open, closing := markTags(span.Marks, defs)
		b.WriteString(open)
		b.WriteString(strings.ReplaceAll(html.EscapeString(span.Text), "\n", "<br>"))
		b.WriteString(closing)
	}
}

func markTags(marks []string, defs map[string]MarkDef) (string, string) {
	var open, closing []string
	for _, mark := range marks {
		switch mark {
		case "strong", "em":
			open = append(open, "<"+mark+">")
			closing = append(closing, "</"+mark+">")
			continue
		}
		def, ok := defs[mark]
		if !ok || def.Type != "link" {
			continue
		}
		tag := `<a href="` + html.EscapeString(def.Href) + `"`
		if strings.HasPrefix(def.Href, "http") {
			tag += ` target="_blank" rel="noopener noreferrer"`
		}
		open = append(open, tag+">")
		closing = append(closing, "</a>")
	}
	for i, j := 0, len(closing)-1; i < j; i, j = i+1, j-1 {
		closing[i], closing[j] = closing[j], closing[i]
	}
	return strings.Join(open, ""), strings.Join(closing, "")
}

type listFrame struct {
	kind   string
	liOpen bool
}

type listStack struct {
	b      *strings.Builder
	frames []listFrame
}

func (s *listStack) item(block Block) {
	level := block.Level
	if level < 1 {
		level = 1
	}
	kind := block.ListItem
	if _, ok := listTags[kind]; !ok {
		kind = "bullet"
	}

	for len(s.frames) > level {
		s.pop()
	}
	if len(s.frames) == level && s.top().kind != kind {
		s.pop()
	}
	if len(s.frames) == level && s.top().liOpen {
		s.b.WriteString("</li>")
		s.top().liOpen = false
	}
	for len(s.frames) < level {
		s.b.WriteString("<" + listTags[kind] + ">")
		s.frames = append(s.frames, listFrame{kind: kind})
	}

	s.b.WriteString("<li>")
	writeSpans(s.b, block)
	s.top().liOpen = true
}

func (s *listStack) top() *listFrame {
	return &s.frames[len(s.frames)-1]
}

func (s *listStack) pop() {
	frame := s.top()
	if frame.liOpen {
		s.b.WriteString("</li>")
	}
	s.b.WriteString("</" + listTags[frame.kind] + ">")
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *listStack) closeAll() {
	for len(s.frames) > 0 {
		s.pop()
	}
}

// PlainText joins the text of every text block, one paragraph per block.
func PlainText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if !block.IsText() {
			continue
		}
		var b strings.Builder
		for _, span := range block.Children {
			b.WriteString(span.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// TextToHTML renders plain text content line by line: "## " and "### "
// lines become h2 and h3, other non-blank lines become paragraphs. All text
// is escaped.
func TextToHTML(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			b.WriteString("<h3>" + html.EscapeString(strings.TrimPrefix(line, "### ")) + "</h3>")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h2>" + html.EscapeString(strings.TrimPrefix(line, "## ")) + "</h2>")
		case strings.TrimSpace(line) != "":
			b.WriteString("<p>" + html.EscapeString(line) + "</p>")
		}
	}
	return b.String()
}
