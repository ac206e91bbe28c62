package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/client/models"
	"github.com/dmitrijs2005/pdstore/internal/common"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:3000").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the session token sent with guarded requests. An empty
// token sends none.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/user", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) SubmitSurvey(ctx context.Context, survey models.Survey) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPut, "/user", survey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Challenges(ctx context.Context) ([]models.Challenge, error) {
	var list []models.Challenge
	if err := c.do(ctx, http.MethodGet, "/challenges", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Ping checks that the server answers its welcome route.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do sends body as JSON and decodes a 2xx response into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e errorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsAPIError reports whether err carries a server response and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
