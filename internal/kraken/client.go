package kraken

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.kraken.com"

// DefaultTimeout bounds each request end to end.
const DefaultTimeout = 15 * time.Second

const userAgent = "Kraken REST API"

// NonceSource produces nonces for private requests. The exchange
// requires nonces to be strictly increasing per API key.
type NonceSource func() int64

// MillisecondNonce is the default nonce source: the current wall clock
// in milliseconds, matching what the exchange documents.
func MillisecondNonce() int64 {
	return time.Now().UnixMilli()
}

// Config configures a Client. Zero values select production defaults.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // overrides Timeout when set
	Nonce      NonceSource
}

// Client issues requests against one API host.
// Safe for concurrent use; each call owns its request and response.
type Client struct {
	baseURL    string
	httpClient *http.Client
	nonce      NonceSource
}

// New creates a client from cfg.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		nonce:      cfg.Nonce,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.nonce == nil {
		c.nonce = MillisecondNonce
	}
	return c
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Body   []byte
}

// Public issues an unauthenticated request against a /0/public path.
// params become the query string.
func (c *Client) Public(ctx context.Context, method, path string, params map[string]string) (*Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.do(req)
}

// Private issues a signed request against a /0/private path using the
// given credentials. The body is the standard nonce(+otp) form and the
// signature covers path and body per the exchange's signing scheme.
func (c *Client) Private(ctx context.Context, method, path string, creds Credentials) (*Response, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("private request to %s without credentials", path)
	}

	nonce := c.nonce()
	postData := privateForm(nonce, creds.OTP).Encode()

	sign, err := Sign(path, creds.Secret, nonce, postData)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(postData))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", creds.Key)
	req.Header.Set("API-Sign", sign)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
