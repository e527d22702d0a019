package content

import "strings"

// PostsPerPage is the blog list page size.
const PostsPerPage = 6

// AllCategories is the filter value that matches every category.
const AllCategories = "Todos"

// FilterCategories are the categories offered as blog filters.
var FilterCategories = []string{"Crédito Responsável", "Planejamento Financeiro", "Mercado Imobiliário"}

// Filter narrows posts to a category and a case-insensitive search over title
// and excerpt. Empty values match everything.
func Filter(posts []Post, query, category string) []Post {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)
	if category == AllCategories {
		category = ""
	}

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Excerpt), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Page is one page of a post list.
type Page struct {
	Posts      []Post `json:"posts"`
	Number     int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Total      int    `json:"total"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate returns page number (1-based) of posts. Out of range numbers are
// clamped to the first or last page.
func Paginate(posts []Post, number, perPage int) Page {
	if perPage <= 0 {
		perPage = PostsPerPage
	}
	total := len(posts)
	pages := (total + perPage - 1) / perPage
	if number < 1 || pages == 0 {
		number = 1
	}
	if number > pages && pages > 0 {
		number = pages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Posts:      append([]Post{}, posts[start:end]...),
		Number:     number,
		TotalPages: pages,
		Total:      total,
	}
}
