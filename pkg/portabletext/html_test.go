package portabletext_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atoshub/go-site/pkg/portabletext"
)

const sample = `[
  {"_type":"block","_key":"a","style":"h2","children":[{"_type":"span","text":"Crédito & você"}]},
  {"_type":"block","_key":"b","style":"normal","markDefs":[{"_key":"l1","_type":"link","href":"https://atoshub.com.br"},{"_key":"l2","_type":"link","href":"/blog"}],
   "children":[{"_type":"span","text":"Leia "},{"_type":"span","text":"mais","marks":["strong","l1"]},{"_type":"span","text":" ou "},{"_type":"span","text":"volte","marks":["l2"]}]},
  {"_type":"block","_key":"c","style":"normal","listItem":"bullet","level":1,"children":[{"_type":"span","text":"um"}]},
  {"_type":"block","_key":"d","style":"normal","listItem":"bullet","level":2,"children":[{"_type":"span","text":"um.um"}]},
  {"_type":"block","_key":"e","style":"normal","listItem":"bullet","level":1,"children":[{"_type":"span","text":"dois"}]},
  {"_type":"block","_key":"f","style":"normal","listItem":"number","level":1,"children":[{"_type":"span","text":"primeiro"}]},
  {"_type":"image","_key":"g","asset":{"_ref":"image-abc123-1200x800-jpg"},"alt":"Fachada"},
  {"_type":"image","_key":"h"},
  {"_type":"block","_key":"i","style":"blockquote","children":[{"_type":"span","text":"<script>alert(1)</script>","marks":["em"]}]}
]`

func decode(t *testing.T) []portabletext.Block {
	t.Helper()
	var blocks []portabletext.Block
	if err := json.Unmarshal([]byte(sample), &blocks); err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return blocks
}

func TestToHTML(t *testing.T) {
	out := portabletext.ToHTML(decode(t), portabletext.Options{ProjectID: "8sg3qh88", Dataset: "production"})

	for _, want := range []string{
		"<h2>Crédito &amp; você</h2>",
		`<strong><a href="https://atoshub.com.br"`,
		`target="_blank"`,
		`rel="noopener noreferrer"`,
		`>mais</a></strong>`,
		`<a href="/blog">volte</a>`,
		"<ul><li>um<ul><li>um.um</li></ul></li><li>dois</li></ul><ol><li>primeiro</li></ol>",
		`src="https://cdn.sanity.io/images/8sg3qh88/production/abc123-1200x800.jpg?w=800"`,
		`alt="Fachada"`,
		"<figcaption>Fachada</figcaption>",
		"<blockquote><em>&lt;script&gt;alert(1)&lt;/script&gt;</em></blockquote>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "nofollow") {
		t.Fatalf("links must not be rewritten with nofollow:\n%s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script must be escaped:\n%s", out)
	}
	if strings.Count(out, "<img") != 1 {
		t.Fatalf("image without asset must be skipped:\n%s", out)
	}
}

func TestToHTML_SanitizesUnsafeLinks(t *testing.T) {
	blocks := []portabletext.Block{{
		Type:     "block",
		MarkDefs: []portabletext.MarkDef{{Key: "x", Type: "link", Href: "javascript:alert(1)"}},
		Children: []portabletext.Span{{Type: "span", Text: "clique", Marks: []string{"x"}}},
	}}
	out := portabletext.ToHTML(blocks, portabletext.Options{})
	if strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe href survived: %s", out)
	}
	if !strings.Contains(out, "clique") {
		t.Fatalf("link text lost: %s", out)
	}
}

func TestPlainText(t *testing.T) {
	got := portabletext.PlainText(decode(t))
	want := "Crédito & você\n\nLeia mais ou volte\n\num\n\num.um\n\ndois\n\nprimeiro\n\n<script>alert(1)</script>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plain text mismatch (-want +got):\n%s", diff)
	}
}

func TestImageURL(t *testing.T) {
	got, err := portabletext.ImageURL("image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-png", "p1", "production", 0)
	if err != nil {
		t.Fatalf("image url: %v", err)
	}
	if got != "https://cdn.sanity.io/images/p1/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.png" {
		t.Fatalf("unexpected url %q", got)
	}
	if _, err := portabletext.ImageURL("file-abc-pdf", "p1", "production", 800); err == nil {
		t.Fatalf("expected error for non image ref")
	}
}

func TestTextToHTML(t *testing.T) {
	got := portabletext.TextToHTML("## Título\n\nPrimeiro <b>parágrafo</b>\n### Sub\n   \nFim")
	want := "<h2>Título</h2><p>Primeiro &lt;b&gt;parágrafo&lt;/b&gt;</p><h3>Sub</h3><p>Fim</p>"
	if got != want {
		t.Fatalf("unexpected html\nwant: %s\n got: %s", want, got)
	}
}

func TestToHTML_InternalLinksHaveNoRel(t *testing.T) {
	blocks := []portabletext.Block{{
		Type:     "block",
		Style:    "normal",
		MarkDefs: []portabletext.MarkDef{{Key: "l", Type: "link", Href: "/blog"}},
		Children: []portabletext.Span{{Type: "span", Text: "volte", Marks: []string{"l"}}},
	}}

	got := portabletext.ToHTML(blocks, portabletext.Options{})
	if diff := cmp.Diff(`<p><a href="/blog">volte</a></p>`, got); diff != "" {
		t.Fatalf("internal link mismatch (-want +got):\n%s", diff)
	}
}
