package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sapienskid/witch/internal/logger"
)

// adminTransport signs every request with a freshly minted short-lived
// token. Tokens expire in minutes, so reusing one across a long publish
// would be fragile.
type adminTransport struct {
	apiKey  string
	wrapped http.RoundTripper
	now     func() time.Time
}

func (t *adminTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := AdminToken(t.apiKey, t.now())
	if err != nil {
		return nil, err
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", "application/json")
	return t.wrapped.RoundTrip(req)
}

// Client talks to a site's admin API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient builds a client for the site at siteURL using an
// "id:hexsecret" admin API key.
func NewClient(siteURL, apiKey string, lg *logger.Logger) *Client {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(siteURL, "/") + "/ghost/api/admin",
		http: &http.Client{
			Transport: &adminTransport{apiKey: apiKey, wrapped: http.DefaultTransport, now: time.Now},
		},
		log: lg,
	}
}

type postsEnvelope struct {
	Posts []Post `json:"posts"`
}

type tagsEnvelope struct {
	Tags []Tag `json:"tags"`
}

// FindPost looks up an existing post by slug-or-title identifier. Any
// failure, transport or parse, reads as "not found": a flaky lookup must
// never block publishing a new post.
func (c *Client) FindPost(ctx context.Context, identifier string) *Post {
	query := url.Values{"filter": {"slug:" + identifier}}
	body, err := c.do(ctx, http.MethodGet, "/posts/?"+query.Encode(), nil)
	if err != nil {
		c.log.Debug("post lookup failed, treating as not found", "identifier", identifier, "err", err)
		return nil
	}
	var env postsEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Posts) == 0 {
		return nil
	}
	return &env.Posts[0]
}

// Tags fetches the site's existing tags so local tag names can reuse
// canonical slugs. Degrades to nil on any failure.
func (c *Client) Tags(ctx context.Context) []Tag {
	body, err := c.do(ctx, http.MethodGet, "/tags/?limit=all", nil)
	if err != nil {
		c.log.Debug("tag lookup failed", "err", err)
		return nil
	}
	var env tagsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return env.Tags
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	return c.send(ctx, http.MethodPost, "/posts/?source=html", post)
}

// UpdatePost overwrites an existing post. The caller passes the remote's
// current updated_at on the post as the optimistic-concurrency token.
func (c *Client) UpdatePost(ctx context.Context, id string, post *Post) (*Post, error) {
	return c.send(ctx, http.MethodPut, "/posts/"+id+"/?source=html", post)
}

func (c *Client) send(ctx context.Context, method, path string, post *Post) (*Post, error) {
	if err := c.prepare(post); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(postsEnvelope{Posts: []Post{*post}})
	if err != nil {
		return nil, err
	}
	c.log.Debug("ghost request", "method", method, "path", path, "body", string(payload))
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var env postsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode ghost response: %w", err)
	}
	if len(env.Posts) == 0 {
		return nil, fmt.Errorf("ghost response contained no posts")
	}
	return &env.Posts[0], nil
}

// prepare validates required fields and normalizes enums and dates before
// the payload goes out. The omitempty tags on Post handle the
// empty-field stripping.
func (c *Client) prepare(post *Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(post.HTML) == "" && strings.TrimSpace(post.Mobiledoc) == "" {
		return ErrEmptyContent
	}
	switch post.Status {
	case "draft", "published", "scheduled":
	default:
		post.Status = defaultStatus
	}
	if post.Visibility != "" {
		switch post.Visibility {
		case "public", "members", "paid":
		default:
			post.Visibility = defaultVisibility
		}
	}
	if post.PublishedAt != "" {
		if normalized, ok := NormalizeDate(post.PublishedAt); ok {
			post.PublishedAt = normalized
		} else {
			c.log.Warn("dropping unparseable published_at", "value", post.PublishedAt)
			post.PublishedAt = ""
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghost request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ghost response: %w", err)
	}
	c.log.Debug("ghost response", "status", resp.StatusCode, "body", string(body))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}
