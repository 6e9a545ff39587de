// Package notifyapi is the HTTP/JSON client for the front desk notification
// service.
package notifyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/notify"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is kept in the error.
	maxErrorBody = 512
)

// Client implements notify.Service over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ notify.Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a client for the service rooted at baseURL, e.g.
// "https://frontdesk.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service url %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.Component("notifyapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) GetNotifications(ctx context.Context, params notify.ListParams) (notify.ListResult, error) {
	const op = "get notifications"

	q := url.Values{}
	if params.UnreadOnly {
		q.Set("unreadOnly", "true")
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	endpoint := c.baseURL + "/notifications"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var res notify.ListResult
	if err := c.do(ctx, op, http.MethodGet, endpoint, &res); err != nil {
		return notify.ListResult{}, err
	}
	if res.Items == nil {
		res.Items = []notify.Notification{}
	}
	return res, nil
}

func (c *Client) AcknowledgeNotification(ctx context.Context, id string) error {
	const op = "acknowledge notification"

	endpoint := c.baseURL + "/notifications/" + url.PathEscape(id) + "/acknowledge"
	return c.do(logging.WithNotificationID(ctx, id), op, http.MethodPost, endpoint, nil)
}

// do sends a request and decodes a JSON body into out when out is non-nil.
// Transport failures are classified as network failures, everything the
// server answers with outside 2xx as server failures.
func (c *Client) do(ctx context.Context, op, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return notify.NetworkError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return notify.NetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().Ctx(ctx).
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("notification service request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return notify.ServerError(op, resp.StatusCode, errors.New(msg))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return notify.ServerError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
