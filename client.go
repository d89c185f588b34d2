package wlc

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/lexfrei/go-iosxe-wlc/internal/httpclient"
	"github.com/lexfrei/go-iosxe-wlc/internal/middleware"
	"github.com/lexfrei/go-iosxe-wlc/internal/restconf"
	"github.com/lexfrei/go-iosxe-wlc/observability"
)

const (
	// AcceptYangDataJSON is the media type RESTCONF responses are requested in.
	AcceptYangDataJSON = "application/yang-data+json"

	// DefaultTimeout is the default per-attempt HTTP timeout.
	DefaultTimeout = 5 * time.Second
	// DefaultRetries is the default number of attempts per operation.
	DefaultRetries = 3
)

// ErrRetriesExhausted marks operations that failed on every attempt. It
// covers error statuses and transport failures alike (timeouts, TLS errors,
// refused connections); the per-attempt details are in the logs. Check with
// errors.Is to distinguish an unreachable controller from a controller that
// legitimately reported zero entries.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Client queries operational state from a Cisco IOS-XE wireless controller
// (e.g. a Catalyst 9800) over its RESTCONF API.
//
// Each operation is an independent, synchronous, best-effort attempt
// sequence: up to Retries sequential requests with no backoff between them,
// succeeding on the first 200. A controller that is rebooting or briefly
// unreachable costs at worst Retries x Timeout of blocking.
type Client struct {
	host       string
	baseURL    string
	httpClient *httpclient.Client
	creds      *credentialStore
	timeout    time.Duration
	retries    int
	logger     observability.Logger
	metrics    observability.MetricsRecorder
}

// Compile-time check to ensure Client implements ControllerAPIClient interface.
var _ ControllerAPIClient = (*Client)(nil)

// ClientConfig holds configuration for the WLC client.
type ClientConfig struct {
	// Host is the controller to query. A bare hostname or host:port is
	// addressed over HTTPS; an explicit scheme is honored as-is (useful
	// for tests against local servers).
	Host string

	// Username for basic auth
	Username string

	// Password for basic auth. Held write-only: it is sent on requests and
	// never logged or otherwise exposed.
	Password string

	// CACertPath is a PEM bundle to verify the controller certificate
	// against. Empty means the system trust store.
	CACertPath string

	// Timeout bounds each request attempt (defaults to 5 seconds)
	Timeout time.Duration

	// Retries sets how many attempts each operation makes (defaults to 3)
	Retries int

	// RateLimitPerMinute caps requests to the controller (0 disables limiting)
	RateLimitPerMinute int

	// HTTPClient is the HTTP client to use (optional)
	HTTPClient *http.Client

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// New creates a new WLC client with default settings.
// This is the recommended way to create a client for most use cases.
//
// Default settings:
//   - Timeout: 5 seconds per attempt
//   - Retries: 3 attempts per operation
//   - TLS: system trust store
//   - Rate limiting: disabled
//
// For custom configuration, use NewWithConfig.
//
// Example:
//
//	client, err := wlc.New("wlc1.example.net", "admin", password)
func New(host, username, password string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		Host:     host,
		Username: username,
		Password: password,
	})
}

// NewWithConfig creates a new WLC client with custom configuration.
// Use this when you need a private CA bundle, custom timeouts, rate
// limiting, or observability hooks.
//
// Example:
//
//	client, err := wlc.NewWithConfig(&wlc.ClientConfig{
//	    Host:       "wlc1.example.net",
//	    Username:   "admin",
//	    Password:   password,
//	    CACertPath: "/etc/pki/enterprise-ca.pem",
//	    Logger:     myLogger,
//	})
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("host is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("username is required")
	}

	// Set defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries == 0 {
		cfg.Retries = DefaultRetries
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NoopLogger()
	}
	// Scope every message to this controller
	logger = logger.With(observability.Field{Key: "controller", Value: cfg.Host})

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	creds := &credentialStore{
		username: cfg.Username,
		password: cfg.Password,
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), cfg.RateLimitPerMinute)
	}

	// Build middleware chain (applied in reverse order: last = innermost)
	// Order from outside to inside: Observability -> RateLimit -> BasicAuth -> TLS
	chain := []httpclient.Middleware{
		middleware.Observability(logger, metrics),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: limiter,
			Logger:  logger,
			Metrics: metrics,
		}),
		middleware.BasicAuth(creds, AcceptYangDataJSON),
	}

	if cfg.CACertPath != "" {
		tlsConfig, err := middleware.CACertificate(cfg.CACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load CA certificate")
		}
		chain = append(chain, middleware.TLSConfig(tlsConfig))
	}

	opts := []httpclient.Option{
		httpclient.WithHTTPClient(cfg.HTTPClient),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMiddleware(chain...),
	}

	baseURL := cfg.Host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		host:       cfg.Host,
		baseURL:    baseURL,
		httpClient: httpclient.New(opts...),
		creds:      creds,
		timeout:    cfg.Timeout,
		retries:    cfg.Retries,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// UpdateCredentials atomically replaces the basic auth credentials. The next
// request issued uses the new pair; in-flight requests keep the old one.
// Only the new username is logged.
func (c *Client) UpdateCredentials(username, password string) {
	c.logger.Debug("updating credentials",
		observability.Field{Key: "username", Value: username},
	)
	c.creds.update(username, password)
}

// Test checks that the controller answers authenticated RESTCONF requests.
// It probes the service root and reports whether any attempt returned 200;
// the response body is not examined. A false return means every attempt
// failed, with the reasons in the logs.
func (c *Client) Test(ctx context.Context) bool {
	c.logger.Debug("starting connectivity test")

	if _, err := c.get(ctx, restconf.RootPath); err != nil {
		return false
	}

	c.logger.Info("connectivity test succeeded")

	return true
}

// ListClientsParams narrows and tunes a ListClients call.
type ListClientsParams struct {
	// MAC restricts the listing to a single client. Any common separator
	// style is accepted (see NormalizeMAC).
	MAC string

	// SkipIPLookup disables the per-client SISF address lookup. The lookup
	// costs one extra round trip per returned client.
	SkipIPLookup bool
}

// ListClients retrieves the operational records of connected wireless
// clients, optionally filtered to one MAC.
//
// Unless SkipIPLookup is set, every returned record is augmented with an
// "ip_addr" field holding the client's SISF address bindings. The lookups
// are sequential, one round trip per client; a lookup that fails after all
// retries degrades to an empty binding list rather than failing the call.
//
// A controller reporting zero clients yields an empty slice and nil error.
// An unreachable controller yields ErrRetriesExhausted.
func (c *Client) ListClients(ctx context.Context, params *ListClientsParams) ([]Record, error) {
	path := restconf.CommonOperDataPath
	filter := "all"

	if params != nil && params.MAC != "" {
		mac, err := NormalizeMAC(params.MAC)
		if err != nil {
			return nil, err
		}
		filter = mac
		path = restconf.Keyed(path, mac)
	}

	c.logger.Debug("listing clients", observability.Field{Key: "client", Value: filter})

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}

	entries, err := restconf.ExtractList(body, restconf.CommonOperDataKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode client list")
	}

	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Record(entry)
	}

	c.logger.Debug("listed clients",
		observability.Field{Key: "client", Value: filter},
		observability.Field{Key: "count", Value: len(records)},
	)

	if params == nil || !params.SkipIPLookup {
		c.attachAddressBindings(ctx, records)
	}

	return records, nil
}

// attachAddressBindings looks up the SISF bindings for each record's MAC and
// stores them under IPAddrField.
func (c *Client) attachAddressBindings(ctx context.Context, records []Record) {
	for _, record := range records {
		mac, ok := record.MAC()
		if !ok {
			c.logger.Warn("client record has no MAC, skipping address lookup")
			record[IPAddrField] = []Record{}
			continue
		}

		bindings, err := c.ListAddressBindings(ctx, &ListAddressBindingsParams{MAC: mac})
		if err != nil {
			// Attempt failures were already logged; the record just gets
			// no bindings.
			bindings = []Record{}
		}

		record[IPAddrField] = bindings
	}
}

// ListAddressBindingsParams narrows a ListAddressBindings call.
type ListAddressBindingsParams struct {
	// MAC restricts the listing to a single client. Any common separator
	// style is accepted (see NormalizeMAC).
	MAC string
}

// ListAddressBindings retrieves entries from the controller's SISF database,
// which maps client MACs to their IP addresses, optionally filtered to one
// MAC.
//
// A controller reporting zero bindings yields an empty slice and nil error.
// An unreachable controller yields ErrRetriesExhausted.
func (c *Client) ListAddressBindings(ctx context.Context, params *ListAddressBindingsParams) ([]Record, error) {
	path := restconf.SisfDBMACPath
	filter := "all"

	if params != nil && params.MAC != "" {
		mac, err := NormalizeMAC(params.MAC)
		if err != nil {
			return nil, err
		}
		filter = mac
		path = restconf.Keyed(path, mac)
	}

	c.logger.Debug("listing address bindings", observability.Field{Key: "client", Value: filter})

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list address bindings")
	}

	entries, err := restconf.ExtractList(body, restconf.SisfDBMACKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode address binding list")
	}

	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Record(entry)
	}

	c.logger.Debug("listed address bindings",
		observability.Field{Key: "client", Value: filter},
		observability.Field{Key: "count", Value: len(records)},
	)

	return records, nil
}

// get is the request primitive every operation is built on: an authenticated
// GET against a RESTCONF path, tried up to c.retries times back to back.
// Only a 200 is success. Any other status and any transport error are logged
// at warn level and retried immediately; there is no backoff between
// attempts. Exhaustion is logged at error level and reported as
// ErrRetriesExhausted.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "context canceled between attempts")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			// Request construction failures are deterministic, retrying
			// cannot help.
			return nil, errors.Wrapf(err, "failed to build request for %s", path)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		elapsed := time.Since(start)

		if err != nil {
			c.logger.Warn("request attempt failed",
				observability.Field{Key: "path", Value: path},
				observability.Field{Key: "attempt", Value: attempt},
				observability.Field{Key: "retries", Value: c.retries},
				observability.Field{Key: "duration", Value: elapsed},
				observability.Field{Key: "error", Value: err.Error()},
			)
			if attempt < c.retries {
				c.metrics.RecordRetry(attempt, path)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				c.logger.Warn("failed to read response body",
					observability.Field{Key: "path", Value: path},
					observability.Field{Key: "attempt", Value: attempt},
					observability.Field{Key: "error", Value: readErr.Error()},
				)
				if attempt < c.retries {
					c.metrics.RecordRetry(attempt, path)
				}
				continue
			}

			c.logger.Debug("request succeeded",
				observability.Field{Key: "path", Value: path},
				observability.Field{Key: "attempt", Value: attempt},
				observability.Field{Key: "duration", Value: elapsed},
			)

			return body, nil
		}

		resp.Body.Close()

		c.logger.Warn("request attempt returned error status",
			observability.Field{Key: "path", Value: path},
			observability.Field{Key: "attempt", Value: attempt},
			observability.Field{Key: "retries", Value: c.retries},
			observability.Field{Key: "status", Value: resp.StatusCode},
			observability.Field{Key: "duration", Value: elapsed},
		)
		if attempt < c.retries {
			c.metrics.RecordRetry(attempt, path)
		}
	}

	c.logger.Error("request failed on every attempt",
		observability.Field{Key: "path", Value: path},
		observability.Field{Key: "attempts", Value: c.retries},
		observability.Field{Key: "timeout", Value: c.timeout},
	)
	c.metrics.RecordError("restconf_get", "RetriesExhausted")

	return nil, errors.Wrapf(ErrRetriesExhausted, "GET %s failed after %d attempts", path, c.retries)
}

// credentialStore holds the basic auth pair behind a lock so rotation and
// concurrent requests do not race. It satisfies middleware.CredentialSource
// without exposing the password on the public Client API.
type credentialStore struct {
	mu       sync.RWMutex
	username string
	password string
}

// Credentials returns the current basic auth pair.
func (s *credentialStore) Credentials() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.username, s.password
}

func (s *credentialStore) update(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	s.password = password
}
