package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	tokens TokenPair
}

type Option func(*Client)

// WithHTTPClient replaces the default client, whose timeout is 10s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at addr. A bare host:port gets the
// http scheme.
func New(addr string, opts ...Option) *Client {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	c := &Client{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens.AccessToken != ""
}

// Logout forgets the local token pair. The server session stays until the
// next login rotates it.
func (c *Client) Logout() {
	c.setTokens(TokenPair{})
}

func (c *Client) setTokens(p TokenPair) {
	c.mu.Lock()
	c.tokens = p
	c.mu.Unlock()
}

func (c *Client) currentTokens() TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/register", "", req, &pair); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

// Login accepts a username or an email.
func (c *Client) Login(ctx context.Context, login, password string) error {
	body := map[string]string{"username": login, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/login", "", body, &pair); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

// Refresh exchanges the stored refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context) error {
	rt := c.currentTokens().RefreshToken
	if rt == "" {
		return ErrNotLoggedIn
	}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/refresh-token", rt, nil, &pair); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

// CheckUser reports whether login is still free.
func (c *Client) CheckUser(ctx context.Context, login string) (bool, error) {
	err := c.do(ctx, http.MethodPost, "/api/v1/users/check-user", "", map[string]string{"username": login}, nil)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorConflict):
		return false, nil
	default:
		return false, err
	}
}

func (c *Client) CreateTodo(ctx context.Context, title string, description *string) (*Todo, error) {
	body := map[string]any{"title": title}
	if description != nil {
		body["description"] = *description
	}
	var t Todo
	if err := c.authorized(ctx, http.MethodPost, "/api/v1/todos", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) GetTodo(ctx context.Context, id string) (*Todo, error) {
	var t Todo
	if err := c.authorized(ctx, http.MethodGet, "/api/v1/todos/byId/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) SetDone(ctx context.Context, id string, done bool) (*Todo, error) {
	var out struct {
		Data Todo `json:"data"`
	}
	err := c.authorized(ctx, http.MethodPatch, "/api/v1/todos/"+url.PathEscape(id), map[string]bool{"done": done}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.authorized(ctx, http.MethodDelete, "/api/v1/todos/"+url.PathEscape(id), nil, nil)
}

// ListPage fetches a page by number; zero values use the server defaults.
func (c *Client) ListPage(ctx context.Context, page, limit int) (*OffsetPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out OffsetPage
	if err := c.authorized(ctx, http.MethodGet, withQuery("/api/v1/todos/offset", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCursor fetches todos older than cursor, newest first. An empty cursor
// starts from the newest.
func (c *Client) ListCursor(ctx context.Context, limit int, cursor string) (*CursorPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("lastCursor", cursor)
	}
	var out CursorPage
	if err := c.authorized(ctx, http.MethodGet, withQuery("/api/v1/todos/cursor", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// authorized sends the access token and retries once after a refresh when
// the token has expired.
func (c *Client) authorized(ctx context.Context, method, path string, body, out any) error {
	at := c.currentTokens().AccessToken
	if at == "" {
		return ErrNotLoggedIn
	}

	err := c.do(ctx, method, path, at, body, out)
	if !errors.Is(err, common.ErrTokenExpired) {
		return err
	}

	if rerr := c.Refresh(ctx); rerr != nil {
		return fmt.Errorf("refresh after expiry: %w", rerr)
	}
	return c.do(ctx, method, path, c.currentTokens().AccessToken, body, out)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
