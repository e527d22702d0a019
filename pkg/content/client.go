package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultRelatedLimit is the number of related posts returned by default.
const DefaultRelatedLimit = 3

// Option customises a Client.
type Option func(*Client)

// WithCache enables result caching.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the clock used for missing publish times.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// Client exposes the three read operations used by the blog pages. Store
// failures are logged and degrade to empty results; no method returns an
// error.
type Client struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
	group  singleflight.Group
}

// NewClient wraps store. A nil store yields a client that always returns
// empty results, matching an unconfigured project.
func NewClient(store Store, options ...Option) *Client {
	c := &Client{
		store:  store,
		ttl:    DefaultTTL,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// AllPosts returns every published post, newest first.
func (c *Client) AllPosts(ctx context.Context) []Post {
	var raw []RawPost
	if !c.fetch(ctx, "all-posts", "posts", AllPostsQuery, nil, &raw) {
		return []Post{}
	}
	return c.normalizeAll(raw)
}

// PostBySlug returns the published post with slug.
func (c *Client) PostBySlug(ctx context.Context, slug string) (Post, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Post{}, false
	}
	var raw *RawPost
	if !c.fetch(ctx, "post-by-slug", "post:"+slug, PostBySlugQuery, map[string]any{"slug": slug}, &raw) || raw == nil {
		return Post{}, false
	}
	return Normalize(*raw, c.now()), true
}

// RelatedPosts returns up to limit posts sharing post's category, excluding
// post itself. A non-positive limit uses DefaultRelatedLimit.
func (c *Client) RelatedPosts(ctx context.Context, post Post, limit int) []Post {
	if post.ID == "" || post.Category == "" {
		return []Post{}
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	params := map[string]any{
		"categoryTitle": post.Category,
		"currentId":     post.ID,
		"limit":         limit,
	}
	key := fmt.Sprintf("related:%s:%s:%d", post.ID, post.Category, limit)
	var raw []RawPost
	if !c.fetch(ctx, "related-posts", key, RelatedPostsQuery, params, &raw) {
		return []Post{}
	}
	return c.normalizeAll(raw)
}

func (c *Client) normalizeAll(raw []RawPost) []Post {
	now := c.now()
	out := make([]Post, 0, len(raw))
	for _, r := range raw {
		out = append(out, Normalize(r, now))
	}
	return out
}

// fetch loads the encoded result for key from the cache or the store and
// decodes it into out. It reports false after logging any failure.
func (c *Client) fetch(ctx context.Context, name, key, query string, params map[string]any, out any) bool {
	if c.store == nil {
		return false
	}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Debug("content cache read failed", zap.String("query", name), zap.Error(err))
		}
		if ok {
			if err := json.Unmarshal(cached, out); err == nil {
				return true
			}
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		var result json.RawMessage
		if err := c.store.Query(context.WithoutCancel(ctx), query, params, &result); err != nil {
			return nil, err
		}
		if len(result) == 0 {
			result = json.RawMessage("null")
		}
		if c.cache != nil {
			if err := c.cache.Set(ctx, key, result, c.ttl); err != nil {
				c.logger.Debug("content cache write failed", zap.String("query", name), zap.Error(err))
			}
		}
		return []byte(result), nil
	})
	if err != nil {
		c.logger.Warn("content query failed", zap.String("query", name), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(v.([]byte), out); err != nil {
		c.logger.Warn("content decode failed", zap.String("query", name), zap.Error(err))
		return false
	}
	return true
}
