package piifirewall

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production endpoint of the PII Firewall Edge API.
	DefaultBaseURL = "https://pii-firewall-edge.p.rapidapi.com"

	// DefaultTimeout bounds each call when no timeout is configured.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "pii-firewall-go/2.4.0"

	pathRedactFast = "/v1/redact/fast"
	pathRedactDeep = "/v1/redact/deep"

	modeLabel = "label"
	modeMask  = "mask"
)

// LoggingConfig controls the client's optional diagnostic logging. Neither
// flag ever logs input text, redacted output or the API key.
type LoggingConfig struct {
	Logger       *log.Logger // destination, log.Default() when nil
	LogRequests  bool        // log endpoint and request ID per call
	LogResponses bool        // log status, detection count and duration
}

// Client talks to the PII Firewall Edge API. It is immutable after
// construction and safe for concurrent use; the zero value is not usable,
// construct with NewClient.
type Client struct {
	apiKey     string
	baseURL    string
	apiHost    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logging    LoggingConfig
}

// Option configures a Client at construction time.
type Option func(*settings)

type settings struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logging    LoggingConfig
	userAgent  string
}

// WithBaseURL overrides the service endpoint, for tests or alternate
// deployments. The URL's host is also sent as the X-RapidAPI-Host header.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithTimeout overrides the per-call timeout (default 10s).
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client, e.g. with a tuned transport
// or proxy settings. Its own Timeout is respected; WithTimeout is ignored
// when this option is used.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) {
		s.httpClient = httpClient
	}
}

// WithRateLimit throttles outgoing calls to rps requests per second with the
// given burst, ahead of the server's own quota. Calls block in the limiter
// until allowed or the context expires.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogging enables diagnostic logging per cfg.
func WithLogging(cfg LoggingConfig) Option {
	return func(s *settings) {
		s.logging = cfg
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// NewClient creates a PII Firewall client. apiKey is the RapidAPI key and
// must be non-empty; misconfiguration is reported here, not at first call.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("piifirewall: API key is required")
	}

	s := settings{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&s)
	}

	s.baseURL = strings.TrimRight(s.baseURL, "/")
	u, err := url.Parse(s.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("piifirewall: invalid base URL %q", s.baseURL)
	}
	if s.timeout <= 0 {
		return nil, fmt.Errorf("piifirewall: timeout must be positive, got %s", s.timeout)
	}

	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: s.timeout}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    s.baseURL,
		apiHost:    u.Host,
		userAgent:  s.userAgent,
		httpClient: httpClient,
		limiter:    s.limiter,
		logging:    s.logging,
	}, nil
}

// String masks the API key so a Client can be logged without leaking it.
func (c *Client) String() string {
	return fmt.Sprintf("piifirewall.Client{baseURL: %s, apiKey: %s}", c.baseURL, maskKey(c.apiKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// RedactFast redacts PII using fast mode (2-5ms server latency): emails,
// phones, SSNs, credit cards, API keys, IBANs and similar. Fast mode does
// not detect human names or addresses.
func (c *Client) RedactFast(ctx context.Context, text string) (*RedactionResult, error) {
	return c.redact(ctx, pathRedactFast, modeLabel, text)
}

// RedactFastMasked is fast mode with PII replaced by asterisks instead of
// category placeholders.
func (c *Client) RedactFastMasked(ctx context.Context, text string) (*RedactionResult, error) {
	return c.redact(ctx, pathRedactFast, modeMask, text)
}

// RedactDeep redacts PII using deep mode (5-15ms server latency): everything
// fast mode detects, plus human names and addresses.
func (c *Client) RedactDeep(ctx context.Context, text string) (*RedactionResult, error) {
	return c.redact(ctx, pathRedactDeep, modeLabel, text)
}

// RedactDeepMasked is deep mode with asterisk masking.
func (c *Client) RedactDeepMasked(ctx context.Context, text string) (*RedactionResult, error) {
	return c.redact(ctx, pathRedactDeep, modeMask, text)
}

type redactRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// redact is the single request/response/error primitive shared by every
// detection mode; a mode is just an endpoint path plus a mode field.
func (c *Client) redact(ctx context.Context, path, mode, text string) (*RedactionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{
			StatusCode: http.StatusBadRequest,
			Message:    "text cannot be empty",
			kind:       ErrBadRequest,
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newTransportError(err)
		}
	}

	body, err := json.Marshal(redactRequest{Text: text, Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("piifirewall: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("piifirewall: build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.userAgent)

	if c.logging.LogRequests {
		c.logf("request: POST %s mode=%s request_id=%s", path, mode, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, extractMessage(respBody))
	}

	result, err := parseResult(resp.StatusCode, respBody)
	if err != nil {
		return nil, err
	}

	if c.logging.LogResponses {
		c.logf("response: status=%d detections=%d duration=%s request_id=%s",
			resp.StatusCode, result.Detections, time.Since(start).Round(time.Millisecond), requestID)
	}
	return result, nil
}

func (c *Client) logf(format string, args ...any) {
	logger := c.logging.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("piifirewall "+format, args...)
}
