// Package asapi provides a client for the Squonk2 Account Server REST API,
// covering Organisations, Units, Products, Assets and Merchants.
//
// The Account Server is the billing and organisation service behind the
// Data Manager: Organisations contain Units, Units contain Products
// (subscriptions) that Data Manager projects and storage are charged
// against.
//
// Operations follow the same contract as the dmapi package: a caller-owned
// bearer token per call and a uniform Result, with Go errors reserved for
// construction misuse.
package asapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/informaticsmatters/squonk2-go-client/pkg/config"
	httpclient "github.com/informaticsmatters/squonk2-go-client/pkg/http"
)

// A common read timeout.
const defaultTimeout = 4 * time.Second

// ErrNoAPIURL is returned by New when no base URL is configured.
var ErrNoAPIURL = errors.New("no API URL defined")

// An Account Server UUID, i.e. a UUID for org/unit/product/asset etc.
var reUUID = regexp.MustCompile(
	"^[a-z]{3,}-[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$")

// Result is the uniform return value of every API operation. Success is
// true when the call succeeded, in which case Message is the decoded JSON
// response payload. On failure Message carries an "error" description.
type Result struct {
	Success bool
	Message map[string]interface{}
}

// Error returns the failure description, or an empty string on success.
func (r Result) Error() string {
	if r.Success {
		return ""
	}
	if msg, ok := r.Message["error"].(string); ok {
		return msg
	}
	return fmt.Sprint(r.Message)
}

func failure(format string, args ...interface{}) Result {
	return Result{
		Success: false,
		Message: map[string]interface{}{"error": fmt.Sprintf(format, args...)},
	}
}

// Config carries the Account Server client settings.
type Config struct {
	// BaseURL is the API root, typically
	// https://example.com/account-server-api
	BaseURL string
	// InsecureSkipVerify disables TLS certificate verification, for
	// deployments carrying self-signed certificates.
	InsecureSkipVerify bool
	// Timeout overrides the default read timeout when set.
	Timeout time.Duration
}

// Client is the Account Server API client.
type Client struct {
	cfg        Config
	httpClient *httpclient.Client
	logger     *zap.Logger
}

// New creates an Account Server client with the default production logger.
// It fails when the base URL is missing or malformed - operations cannot
// be called on an unconfigured client.
func New(cfg Config) (*Client, error) {
	logger, _ := zap.NewProduction()
	return NewWithLogger(cfg, logger)
}

// NewWithLogger creates an Account Server client with a custom logger
func NewWithLogger(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoAPIURL
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("malformed API URL %q", cfg.BaseURL)
	}

	client := httpclient.NewClientWithLogger(logger)
	if cfg.InsecureSkipVerify {
		client = httpclient.NewInsecureClientWithLogger(logger)
	}

	return &Client{
		cfg:        cfg,
		httpClient: client,
		logger:     logger,
	}, nil
}

// NewFromEnvironment creates a client configured from SQUONK2_ASAPI_URL and
// SQUONK2_ASAPI_VERIFY_SSL_CERT.
func NewFromEnvironment() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateAccountServer(); err != nil {
		return nil, err
	}
	return New(Config{
		BaseURL:            cfg.AccountServerURL,
		InsecureSkipVerify: !cfg.AccountServerVerifySSLCert,
	})
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// requestSpec describes a single API call. The token is optional: a few
// endpoints (version) are anonymous.
type requestSpec struct {
	method        string
	path          string
	token         string
	queryParams   map[string]string
	body          interface{}
	expectedCodes []int
	errorMessage  string
}

// request sends one API request and folds the outcome into a Result. The
// Account Server accepts JSON request bodies.
func (c *Client) request(ctx context.Context, spec requestSpec) Result {
	endpoint, err := httpclient.BuildURL(c.cfg.BaseURL, spec.path, spec.queryParams)
	if err != nil {
		c.logger.Error("Failed to build URL", zap.Error(err), zap.String("path", spec.path))
		return failure("%s (%v)", spec.errorMessage, err)
	}

	headers := map[string]string{}
	if spec.token != "" {
		headers["Authorization"] = fmt.Sprintf("Bearer %s", spec.token)
	}

	timeout := defaultTimeout
	if c.cfg.Timeout > 0 {
		timeout = c.cfg.Timeout
	}

	resp, err := c.httpClient.Do(httpclient.RequestOptions{
		Method:  spec.method,
		URL:     endpoint,
		Headers: headers,
		Body:    spec.body,
		Timeout: timeout,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", spec.method),
			zap.String("path", spec.path))
		return failure("%s (%v)", spec.errorMessage, err)
	}

	expectedCodes := spec.expectedCodes
	if len(expectedCodes) == 0 {
		expectedCodes = []int{http.StatusOK}
	}
	if !containsCode(expectedCodes, resp.StatusCode) {
		c.logger.Error("Unexpected response",
			zap.Int("status_code", resp.StatusCode),
			zap.String("method", spec.method),
			zap.String("path", spec.path),
			zap.String("response", string(resp.Body)))
		return failure("%s (status=%d)", spec.errorMessage, resp.StatusCode)
	}

	message := map[string]interface{}{}
	_ = json.Unmarshal(resp.Body, &message)

	return Result{Success: true, Message: message}
}

func containsCode(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// Ping ensures the server is responding.
func (c *Client) Ping(ctx context.Context) Result {
	return c.GetVersion(ctx)
}

// GetVersion returns the AS-API service version. No token is required.
func (c *Client) GetVersion(ctx context.Context) Result {
	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/version",
		errorMessage: "Failed getting version",
	})
}
