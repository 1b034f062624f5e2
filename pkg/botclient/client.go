// Package botclient talks to the movie booking bot over its JSON HTTP API.
package botclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

const (
	ChatPath         = "/chat"
	BookedSeatsPath  = "/get_booked_seats"
	ShowBookingsPath = "/show_bookings"

	RequestIDHeader = "X-Request-ID"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type BookedSeatsRequest struct{}

type BookedSeatsResponse struct {
	BookedSeats []string `json:"bookedSeats"`
	Error       string   `json:"error,omitempty"`
}

// Client keeps the bot's session cookie between calls; the bot stores the
// booking in progress in that session.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

type Option func(*Client) error

// WithHTTPClient replaces the default client. A client without a cookie jar
// gets the default jar.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) error {
		if c == nil {
			return errors.New("http client is nil")
		}
		client.httpClient = c
		return nil
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) error {
		if d < 0 {
			return errors.Errorf("negative timeout %s", d)
		}
		client.timeout = d
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(client *Client) error {
		client.logger = logger
		return nil
	}
}

func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     log.Logger,
	}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create cookie jar")
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// Chat sends a user message and returns the bot reply. The reply is markup.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, ChatPath, ChatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// BookedSeats returns the ids of seats already booked for the session's show.
// A response without the bookedSeats field yields an empty list.
func (c *Client) BookedSeats(ctx context.Context) ([]string, error) {
	var resp BookedSeatsResponse
	if err := c.do(ctx, http.MethodPost, BookedSeatsPath, BookedSeatsRequest{}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		c.logger.Debug().Str("error", resp.Error).Msg("bot reported an error for booked seats")
	}
	return resp.BookedSeats, nil
}

// ShowBookings returns the bot's markup listing of bookings for the selected movie.
func (c *Client) ShowBookings(ctx context.Context) (string, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodGet, ShowBookingsPath, nil, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "failed to encode %s request", path)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return errors.Wrapf(err, "failed to build %s request", path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With().Str("method", method).Str("path", path).Str("request_id", requestID).Logger()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("bot responded")

	// Error statuses are not rejected on their own: a JSON body is used as is,
	// anything else fails to decode.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s response (status %d)", path, resp.StatusCode)
	}
	return nil
}
