package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
)

// TokenSource yields the bearer credential resolved at session start.
type TokenSource interface {
	Token() string
}

// Client talks to the ride/shop REST backend. Every call carries the fixed
// client timeout; responses use the {success, message, data} envelope.
type Client struct {
	baseURL      string
	client       *http.Client
	tokens       TokenSource
	probeTimeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithProbeTimeout sets the timeout of the order connectivity probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.probeTimeout = d }
}

// baseURL example: http://localhost:5000
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:       &http.Client{Timeout: timeout},
		tokens:       tokens,
		probeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type call struct {
	method string
	path   string
	body   any
	auth   bool
	header map[string]string
}

// do sends the request and returns the decoded envelope. A missing token on
// an authenticated call fails before anything is sent.
func (c *Client) do(ctx context.Context, rq call) (envelope, error) {
	var env envelope
	if c == nil || c.baseURL == "" {
		return env, apperr.Network(errors.New("backend base url is empty"))
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if rq.auth && token == "" {
		return env, apperr.Unauthenticated()
	}

	var body io.Reader
	if rq.body != nil {
		b, err := json.Marshal(rq.body)
		if err != nil {
			return env, fmt.Errorf("encode %s %s: %w", rq.method, rq.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, rq.method, c.baseURL+rq.path, body)
	if err != nil {
		return env, fmt.Errorf("build %s %s: %w", rq.method, rq.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range rq.header {
		req.Header.Set(k, v)
	}

	res, err := c.client.Do(req)
	if err != nil {
		log.Printf("[BACKEND] [ERROR] %s %s: %v", rq.method, rq.path, err)
		return env, classifyTransport(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		log.Printf("[BACKEND] [ERROR] %s %s: read body: %v", rq.method, rq.path, err)
		return env, apperr.Network(fmt.Errorf("read %s %s: %w", rq.method, rq.path, err))
	}
	decodeErr := json.Unmarshal(raw, &env)

	if res.StatusCode == http.StatusNotFound {
		return env, apperr.NotFound(env.message())
	}
	if res.StatusCode == http.StatusUnauthorized {
		if env.message() == "" {
			return env, apperr.Unauthenticated()
		}
		return env, &apperr.Error{Kind: apperr.KindUnauthenticated, Status: res.StatusCode, Message: env.message()}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := env.message()
		if decodeErr != nil {
			log.Printf("[BACKEND] [WARN] %s %s status=%d body=%s", rq.method, rq.path, res.StatusCode, strings.TrimSpace(string(raw)))
		}
		return env, apperr.Business(res.StatusCode, msg)
	}
	if decodeErr != nil {
		return env, apperr.Business(res.StatusCode, "")
	}
	if env.Success == nil || !*env.Success {
		return env, apperr.Business(res.StatusCode, env.message())
	}
	return env, nil
}

func (c *Client) getData(ctx context.Context, rq call, out any) error {
	env, err := c.do(ctx, rq)
	if err != nil {
		return err
	}
	return decodeData(env.Data, out)
}

func decodeData(data json.RawMessage, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Business(http.StatusOK, "")
	}
	return nil
}

// decodeList accepts either a bare array or an object holding the array
// under one of keys.
func decodeList(data json.RawMessage, out any, keys ...string) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		return decodeData(trimmed, out)
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return apperr.Business(http.StatusOK, "")
	}
	for _, k := range keys {
		if v, ok := wrapper[k]; ok {
			return decodeData(v, out)
		}
	}
	return nil
}

// classifyTransport maps a failed round trip. Dial and DNS failures mean
// the request never left, anything else may have reached the server.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Timeout(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apperr.Timeout(err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperr.Unreachable(err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return apperr.Unreachable(err)
	}
	return apperr.Network(err)
}
