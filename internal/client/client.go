// Package client talks to the content service that stores blog posts.
//
// The service exposes three endpoints: GET /blogs, GET /blogs/{id} and POST /blogs.
// Every failure is reported as *Error whose Kind can be matched with errors.Is.
package client

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

	"blogfront/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO-8601 form the client stamps on new posts (UTC, milliseconds)
const DateLayout = "2006-01-02T15:04:05.000Z"

const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
)

type ContentService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, payload models.NewPost) (*models.Post, error)
}

// Client is safe for concurrent use; it holds no mutable state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	validate   *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClock sets the time source used to stamp the date of new posts
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithoutValidation sends create payloads as-is and leaves validation to the service
func WithoutValidation() Option {
	return func(c *Client) {
		c.validate = nil
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("неверный адрес сервиса контента %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("неверный адрес сервиса контента %q: ожидается http(s) URL", baseURL)
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: http.DefaultClient,
		now:        time.Now,
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured service address without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every post in the order the service sends them.
func (c *Client) List(ctx context.Context) ([]models.Post, error) {
	resp, err := c.do(ctx, opList, http.MethodGet, c.baseURL+"/blogs", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(opList, resp, false)
	}

	var posts []models.Post
	if err := decode(opList, resp, &posts); err != nil {
		return nil, err
	}

	// null is not a listing
	if posts == nil {
		return nil, &Error{Op: opList, Kind: ErrDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("ожидался JSON массив")}
	}

	seen := make(map[string]struct{}, len(posts))
	for i := range posts {
		id := posts[i].ID
		if id == "" {
			return nil, &Error{Op: opList, Kind: ErrDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("пост #%d без id", i)}
		}
		if _, dup := seen[id]; dup {
			return nil, &Error{Op: opList, Kind: ErrDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("повторяющийся id %q", id)}
		}
		seen[id] = struct{}{}
		posts[i].Category = models.CloneCategory(posts[i].Category)
	}

	return posts, nil
}

// Get returns the post with the given id. A missing post is reported as ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, &Error{Op: opGet, Kind: ErrInvalidArgument, Err: fmt.Errorf("пустой id")}
	}
	if hasDotSegment(id) {
		return nil, &Error{Op: opGet, Kind: ErrInvalidArgument, Err: fmt.Errorf("недопустимый id %q", id)}
	}

	resp, err := c.do(ctx, opGet, http.MethodGet, c.baseURL+"/blogs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(opGet, resp, true)
	}

	return decodePost(opGet, resp)
}

// Create stamps the payload with the current instant and sends it to the service.
// It is not idempotent: two calls create two posts.
func (c *Client) Create(ctx context.Context, payload models.NewPost) (*models.Post, error) {
	payload.Date = c.now().UTC().Format(DateLayout)
	payload.Category = models.CloneCategory(payload.Category)

	if c.validate != nil {
		if err := c.validate.Struct(payload); err != nil {
			return nil, &Error{Op: opCreate, Kind: ErrInvalidPayload, Err: err}
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Op: opCreate, Kind: ErrInvalidPayload, Err: err}
	}

	resp, err := c.do(ctx, opCreate, http.MethodPost, c.baseURL+"/blogs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, statusError(opCreate, resp, false)
	}

	return decodePost(opCreate, resp)
}

// hasDotSegment reports ids that the server would resolve as "." or ".." path
// segments once the escaped slashes are decoded
func hasDotSegment(id string) bool {
	for _, segment := range strings.Split(id, "/") {
		if segment == "." || segment == ".." {
			return true
		}
	}
	return false
}

func (c *Client) do(ctx context.Context, op, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrInvalidArgument, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrTransport, Err: err}
	}

	return resp, nil
}

func statusError(op string, resp *http.Response, notFound bool) error {
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	kind := ErrUnexpectedStatus
	switch {
	case notFound && resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		kind = ErrServiceUnavailable
	}

	return &Error{Op: op, Kind: kind, StatusCode: resp.StatusCode}
}

func decode(op string, resp *http.Response, dest interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Op: op, Kind: ErrDecode, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func decodePost(op string, resp *http.Response) (*models.Post, error) {
	var post models.Post
	if err := decode(op, resp, &post); err != nil {
		return nil, err
	}
	if post.ID == "" {
		return nil, &Error{Op: op, Kind: ErrDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("пост без id")}
	}
	post.Category = models.CloneCategory(post.Category)

	return &post, nil
}

var _ ContentService = (*Client)(nil)
