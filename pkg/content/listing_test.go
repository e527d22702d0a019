package content

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func listingFixture() []Post {
	return []Post{
		{ID: "1", Title: "Crédito consciente", Excerpt: "Como usar bem", Category: "Crédito Responsável"},
		{ID: "2", Title: "Orçamento doméstico", Excerpt: "Planeje o mês", Category: "Planejamento Financeiro"},
		{ID: "3", Title: "Comprar ou alugar?", Excerpt: "Crédito imobiliário em foco", Category: "Mercado Imobiliário"},
	}
}

func ids(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "", []string{"1", "2", "3"}},
		{"all category", "", AllCategories, []string{"1", "2", "3"}},
		{"category", "", "Mercado Imobiliário", []string{"3"}},
		{"search title and excerpt", "CRÉDITO", "", []string{"1", "3"}},
		{"search and category", "crédito", "Crédito Responsável", []string{"1"}},
		{"no match", "bitcoin", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(listingFixture(), tc.query, tc.category))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	var posts []Post
	for i := 1; i <= 14; i++ {
		posts = append(posts, Post{ID: fmt.Sprint(i)})
	}

	first := Paginate(posts, 0, 0)
	if first.Number != 1 || first.TotalPages != 3 || first.Total != 14 || len(first.Posts) != PostsPerPage {
		t.Fatalf("unexpected first page: %+v", first)
	}
	if first.HasPrev() || !first.HasNext() {
		t.Fatalf("unexpected navigation on first page")
	}

	last := Paginate(posts, 9, 6)
	if diff := cmp.Diff([]string{"13", "14"}, ids(last.Posts)); diff != "" {
		t.Fatalf("last page mismatch (-want +got):\n%s", diff)
	}
	if last.Number != 3 || last.HasNext() || !last.HasPrev() {
		t.Fatalf("unexpected last page: %+v", last)
	}

	empty := Paginate(nil, 2, 6)
	if empty.Number != 1 || empty.TotalPages != 0 || len(empty.Posts) != 0 {
		t.Fatalf("unexpected empty page: %+v", empty)
	}
	if empty.HasPrev() || empty.HasNext() {
		t.Fatalf("empty listing must not link to other pages: %+v", empty)
	}
}
