package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fragmede/sesame/internal/render"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "sesame/1.0"
	maxErrorBody   = 4 << 10
	maxBody        = 64 << 10

	// HeaderRequestID carries a per-request UUID for log correlation.
	HeaderRequestID = "X-Request-ID"
)

// Client is the auth API client. It holds no credentials; callers pass
// the bearer token on every call.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest builds a request for path. A non-nil body is JSON encoded.
// When token is non-empty the request carries "Authorization: Bearer".
func (c *Client) NewRequest(ctx context.Context, method, path string, body any, token string) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Do sends req. A 2xx body is decoded into dst when dst is non-nil;
// a non-2xx response becomes a *StatusError.
func (c *Client) Do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(req, resp)
	}
	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// Login posts credentials to the login endpoint.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	return c.auth(ctx, http.MethodPost, PathLogin, creds, "")
}

// Register posts credentials to the registration endpoint.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	return c.auth(ctx, http.MethodPost, PathRegister, creds, "")
}

// Logout notifies the server that token is no longer in use.
func (c *Client) Logout(ctx context.Context, token string) (*AuthResponse, error) {
	return c.auth(ctx, http.MethodPost, PathLogout, nil, token)
}

// DeleteAccount deletes the account owning token.
func (c *Client) DeleteAccount(ctx context.Context, token string) (*AuthResponse, error) {
	return c.auth(ctx, http.MethodDelete, PathDeleteAccount, nil, token)
}

// Me fetches the profile of the account owning token.
func (c *Client) Me(ctx context.Context, token string) (*UserProfile, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, PathMe, nil, token)
	if err != nil {
		return nil, err
	}
	var profile UserProfile
	if err := c.Do(req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// auth calls one of the endpoints answering with an AuthResponse. The
// backend reports application failures with a JSON body on 4xx too, so
// those are decoded and returned without an error. Transport failures,
// 5xx responses and bodies that are not an AuthResponse are errors.
func (c *Client) auth(ctx context.Context, method, path string, body any, token string) (*AuthResponse, error) {
	req, err := c.NewRequest(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, statusError(req, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}

	var out AuthResponse
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &StatusError{
				StatusCode: resp.StatusCode,
				Message:    errorText(resp.Header.Get("Content-Type"), data),
				RequestID:  req.Header.Get(HeaderRequestID),
			}
		}
		return nil, fmt.Errorf("decoding response from %s: %w", path, err)
	}
	if resp.StatusCode >= 300 {
		// An error status never counts as success, whatever the body says.
		out.Success = false
		if resp.StatusCode == http.StatusUnauthorized && out.Message == "" {
			return nil, &StatusError{StatusCode: resp.StatusCode, RequestID: req.Header.Get(HeaderRequestID)}
		}
	}
	return &out, nil
}

func statusError(req *http.Request, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    errorText(resp.Header.Get("Content-Type"), body),
		RequestID:  req.Header.Get(HeaderRequestID),
	}
}

// errorText extracts a human-readable message from an error body.
func errorText(contentType string, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/json":
		var m struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &m) == nil {
			if m.Message != "" {
				return m.Message
			}
			return m.Error
		}
	case "text/html":
		return render.PlainText(string(body), 0)
	}
	return strings.TrimSpace(string(body))
}
