package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/atoshub/go-site/pkg/portabletext"
)

type fakeStore struct {
	results map[string]string
	err     error
	calls   []fakeCall
	ctxErrs []error
}

type fakeCall struct {
	query  string
	params map[string]any
}

func (s *fakeStore) Query(ctx context.Context, query string, params map[string]any, out any) error {
	s.calls = append(s.calls, fakeCall{query: query, params: params})
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.err != nil {
		return s.err
	}
	raw, ok := s.results[query]
	if !ok {
		raw = "null"
	}
	return json.Unmarshal([]byte(raw), out)
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

const postsJSON = `[
  {"_id":"p2","title":"Crédito para PMEs","excerpt":"Resumo","slug":"credito-pmes","author":{"name":"Ana"},
   "publishedAt":"2025-02-10T09:00:00Z","readTime":"7 min","categories":[{"title":"Crédito"},{"title":"PME"}],
   "imageUrl":"https://cdn.example/p2.jpg","body":[{"_type":"block","children":[{"_type":"span","text":"Oi"}]}]},
  {"_id":"p1","title":"Sem metadados","slug":"sem-metadados"}
]`

func TestClient_AllPostsNormalizes(t *testing.T) {
	store := &fakeStore{results: map[string]string{AllPostsQuery: postsJSON}}
	client := NewClient(store, WithClock(func() time.Time { return fixedNow }))

	posts := client.AllPosts(context.Background())
	if len(posts) != 2 {
		t.Fatalf("expected two posts, got %d", len(posts))
	}

	first := posts[0]
	if first.ID != "p2" || first.Author != "Ana" || first.Category != "Crédito" || first.ReadTime != "7 min" {
		t.Fatalf("unexpected first post %+v", first)
	}
	if !first.Content.IsRich() {
		t.Fatalf("expected rich content")
	}
	if !first.PublishedAt.Equal(time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected publish time %s", first.PublishedAt)
	}

	want := Post{
		ID:          "p1",
		Title:       "Sem metadados",
		Slug:        "sem-metadados",
		Author:      DefaultAuthor,
		PublishedAt: fixedNow,
		ReadTime:    DefaultReadTime,
		Category:    DefaultCategory,
		ImageURL:    DefaultImageURL,
	}
	if diff := cmp.Diff(want, posts[1]); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FailuresAreSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	client := NewClient(store)
	ctx := context.Background()

	if posts := client.AllPosts(ctx); posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", posts)
	}
	if _, ok := client.PostBySlug(ctx, "x"); ok {
		t.Fatalf("expected not found")
	}
	if related := client.RelatedPosts(ctx, Post{ID: "p1", Category: "Crédito"}, 3); len(related) != 0 {
		t.Fatalf("expected no related posts")
	}
}

func TestClient_ShortCircuits(t *testing.T) {
	store := &fakeStore{}
	client := NewClient(store)
	ctx := context.Background()

	if _, ok := client.PostBySlug(ctx, "  "); ok {
		t.Fatalf("empty slug must not be found")
	}
	if related := client.RelatedPosts(ctx, Post{}, 3); len(related) != 0 {
		t.Fatalf("expected no related posts for empty post")
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no store calls, got %d", len(store.calls))
	}

	if posts := NewClient(nil).AllPosts(ctx); len(posts) != 0 {
		t.Fatalf("unconfigured client must return nothing")
	}
}

func TestClient_PostBySlug(t *testing.T) {
	store := &fakeStore{results: map[string]string{
		PostBySlugQuery: `{"_id":"p9","title":"T","slug":"t","author":"Carlos","category":"Imóveis","content":"texto simples"}`,
	}}
	client := NewClient(store)

	post, ok := client.PostBySlug(context.Background(), "t")
	if !ok {
		t.Fatalf("expected post")
	}
	if post.Author != "Carlos" || post.Category != "Imóveis" || post.Content.Text != "texto simples" {
		t.Fatalf("unexpected post %+v", post)
	}
	if diff := cmp.Diff(map[string]any{"slug": "t"}, store.calls[0].params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	missing := NewClient(&fakeStore{})
	if _, ok := missing.PostBySlug(context.Background(), "nope"); ok {
		t.Fatalf("null result must be not found")
	}
}

func TestClient_RelatedPostsParams(t *testing.T) {
	store := &fakeStore{results: map[string]string{RelatedPostsQuery: `[]`}}
	client := NewClient(store)

	client.RelatedPosts(context.Background(), Post{ID: "p1", Category: "Crédito"}, 0)

	want := map[string]any{"categoryTitle": "Crédito", "currentId": "p1", "limit": DefaultRelatedLimit}
	if diff := cmp.Diff(want, store.calls[0].params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_CachesResults(t *testing.T) {
	store := &fakeStore{results: map[string]string{AllPostsQuery: postsJSON}}
	cache := NewMemoryCache()
	client := NewClient(store, WithCache(cache))
	ctx := context.Background()

	first := client.AllPosts(ctx)
	second := client.AllPosts(ctx)
	if len(store.calls) != 1 {
		t.Fatalf("expected one store call, got %d", len(store.calls))
	}
	if diff := cmp.Diff(first[0].Title, second[0].Title); diff != "" {
		t.Fatalf("cached result mismatch (-want +got):\n%s", diff)
	}

	store.err = errors.New("down")
	cache.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Second) }
	if posts := client.AllPosts(ctx); len(posts) != 0 {
		t.Fatalf("expired entry must refetch and degrade to empty, got %d", len(posts))
	}
}

func TestContent_JSON(t *testing.T) {
	rich, err := json.Marshal(Content{Text: "ignored", Blocks: []portabletext.Block{{Type: "block"}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(rich) != `[{"_type":"block"}]` {
		t.Fatalf("unexpected rich json %s", rich)
	}

	plain, _ := json.Marshal(Content{Text: "oi"})
	if string(plain) != `"oi"` {
		t.Fatalf("unexpected text json %s", plain)
	}
	empty, _ := json.Marshal(Content{})
	if string(empty) != `null` {
		t.Fatalf("unexpected empty json %s", empty)
	}

	var decoded Content
	if err := json.Unmarshal([]byte(`"texto"`), &decoded); err != nil || decoded.Text != "texto" {
		t.Fatalf("decode text: %v %+v", err, decoded)
	}
}

func TestClient_StoreQueryOutlivesCaller(t *testing.T) {
	store := &fakeStore{results: map[string]string{AllPostsQuery: postsJSON}}
	client := NewClient(store, WithClock(func() time.Time { return fixedNow }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if posts := client.AllPosts(ctx); len(posts) != 2 {
		t.Fatalf("expected posts despite cancelled caller, got %d", len(posts))
	}
	if diff := cmp.Diff([]error{nil}, store.ctxErrs, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("store context mismatch (-want +got):\n%s", diff)
	}
}
