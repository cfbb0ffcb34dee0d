// Package dmapi provides a client for the Squonk2 Data Manager REST API.
//
// The Data Manager runs containerised applications and jobs against files
// held in projects. This package wraps the parts of its API that deal with
// projects, project files, job/application instances and tasks.
//
// Every operation takes a caller-owned bearer access token (see the auth
// package) and returns a uniform Result. API-level failures - 4xx/5xx
// responses, network errors, undecodable bodies - are folded into the
// Result; a Go error is only returned for client construction misuse.
package dmapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/informaticsmatters/squonk2-go-client/pkg/config"
	httpclient "github.com/informaticsmatters/squonk2-go-client/pkg/http"
)

// The Job instance Application ID - a 'well known' identity.
const jobApplicationID = "datamanagerjobs.squonk.it"

// Account Server identities used by CreateProject when none are supplied.
// These match the test identities built into Data Manager deployments.
const (
	TestTierProductID  = "product-11111111-1111-1111-1111-111111111111"
	TestOrganisationID = "org-11111111-1111-1111-1111-111111111111"
	TestUnitID         = "unit-11111111-1111-1111-1111-111111111111"
)

// Per-operation read timeouts, used when Config.Timeout is unset.
const (
	defaultTimeout = 4 * time.Second
	listTimeout    = 8 * time.Second
	uploadTimeout  = 120 * time.Second
)

// ErrNoAPIURL is returned by New when no base URL is configured.
var ErrNoAPIURL = errors.New("no API URL defined")

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

// Config carries the Data Manager client settings.
type Config struct {
	// BaseURL is the API root, typically
	// https://example.com/data-manager-api
	BaseURL string
	// InsecureSkipVerify disables TLS certificate verification, for
	// deployments carrying self-signed certificates.
	InsecureSkipVerify bool
	// Timeout overrides the per-operation read timeouts when set.
	Timeout time.Duration
}

// Client is the Data Manager API client.
type Client struct {
	cfg        Config
	httpClient *httpclient.Client
	logger     *zap.Logger
}

// New creates a Data Manager client with the default production logger.
// It fails when the base URL is missing or malformed - operations cannot
// be called on an unconfigured client.
func New(cfg Config) (*Client, error) {
	logger, _ := zap.NewProduction()
	return NewWithLogger(cfg, logger)
}

// NewWithLogger creates a Data Manager client with a custom logger
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

// NewFromEnvironment creates a client configured from SQUONK2_DMAPI_URL and
// SQUONK2_DMAPI_VERIFY_SSL_CERT.
func NewFromEnvironment() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateDataManager(); err != nil {
		return nil, err
	}
	return New(Config{
		BaseURL:            cfg.DataManagerURL,
		InsecureSkipVerify: !cfg.DataManagerVerifySSLCert,
	})
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// requestSpec describes a single API call. All public operations pass
// control to request, returning its Result to the user.
type requestSpec struct {
	method        string
	path          string
	token         string
	queryParams   map[string]string
	formData      map[string]string
	files         map[string]string
	expectedCodes []int
	errorMessage  string
	timeout       time.Duration
}

// request sends one API request and folds the outcome into a Result. The
// raw response is also returned for operations that need the undecoded
// body or the status code.
func (c *Client) request(ctx context.Context, spec requestSpec) (Result, *httpclient.Response) {
	endpoint, err := httpclient.BuildURL(c.cfg.BaseURL, spec.path, spec.queryParams)
	if err != nil {
		c.logger.Error("Failed to build URL", zap.Error(err), zap.String("path", spec.path))
		return failure("%s (%v)", spec.errorMessage, err), nil
	}

	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", spec.token),
	}
	// The Data Manager accepts form-encoded request bodies.
	var body interface{}
	if len(spec.formData) > 0 {
		body = spec.formData
		if len(spec.files) == 0 {
			headers["Content-Type"] = "application/x-www-form-urlencoded"
		}
	}

	timeout := spec.timeout
	if c.cfg.Timeout > 0 {
		timeout = c.cfg.Timeout
	}

	resp, err := c.httpClient.Do(httpclient.RequestOptions{
		Method:  spec.method,
		URL:     endpoint,
		Headers: headers,
		Body:    body,
		Files:   spec.files,
		Timeout: timeout,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", spec.method),
			zap.String("path", spec.path))
		return failure("%s (%v)", spec.errorMessage, err), nil
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
		return failure("%s (status=%d)", spec.errorMessage, resp.StatusCode), resp
	}

	// Try and decode the response, falling back to an empty payload when
	// the body is not a JSON object.
	message := map[string]interface{}{}
	_ = json.Unmarshal(resp.Body, &message)

	return Result{Success: true, Message: message}, resp
}

func containsCode(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// Ping calls the DM API to ensure the server is responding. The best
// endpoint for this (since DM 0.7) is the account-server namespace.
func (c *Client) Ping(ctx context.Context, token string) Result {
	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/account-server/namespace",
		token:        token,
		errorMessage: "Failed ping",
		timeout:      defaultTimeout,
	})
	return result
}

// GetVersion returns the underlying service version.
func (c *Client) GetVersion(ctx context.Context, token string) Result {
	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/version",
		token:        token,
		errorMessage: "Failed getting version",
		timeout:      defaultTimeout,
	})
	return result
}
