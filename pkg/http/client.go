package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is applied to requests that carry no explicit timeout.
const DefaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	// timeout is the fallback for requests that carry no explicit
	// RequestOptions.Timeout. The underlying http.Client carries no
	// timeout of its own so a per-call timeout can exceed the fallback.
	timeout time.Duration
}

type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string]string
	Body        interface{}
	// Files maps a form field name to a local file path. When non-empty the
	// request is sent as multipart/form-data and Body (if any) must be a
	// map of string form fields.
	Files   map[string]string
	Timeout time.Duration
	Context context.Context
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

func NewClient() *Client {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(logger)
}

// NewClientWithLogger creates a new HTTP client with a custom logger
func NewClientWithLogger(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		logger:     logger,
		timeout:    DefaultTimeout,
	}
}

// NewInsecureClientWithLogger creates a client that skips TLS certificate
// verification. Intended for servers carrying self-signed certificates.
func NewInsecureClientWithLogger(logger *zap.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	return &Client{
		httpClient: &http.Client{
			Transport: transport,
		},
		logger:  logger,
		timeout: DefaultTimeout,
	}
}

// Do sends a single request. There is no retry: callers that need to
// recover from an expired token are expected to re-authenticate and call
// again.
func (c *Client) Do(opts RequestOptions) (*Response, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := c.buildRequest(ctx, opts)
	if err != nil {
		c.logger.Error("Failed to build request", zap.Error(err), zap.String("method", opts.Method), zap.String("url", opts.URL))
		return nil, err
	}

	c.logger.Debug("Making HTTP request",
		zap.String("method", opts.Method),
		zap.String("url", req.URL.String()))

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("HTTP request failed",
			zap.Error(err),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("HTTP request complete",
		zap.Int("status_code", httpResp.StatusCode),
		zap.String("method", opts.Method),
		zap.String("url", opts.URL))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	var bodyReader io.Reader
	contentType := opts.Headers["Content-Type"]
	if contentType == "" {
		contentType = opts.Headers["content-type"]
	}

	switch {
	case len(opts.Files) > 0:
		var err error
		bodyReader, contentType, err = buildMultipartBody(opts)
		if err != nil {
			return nil, err
		}
	case opts.Body != nil:
		if bodyBytes, ok := opts.Body.([]byte); ok {
			bodyReader = bytes.NewReader(bodyBytes)
		} else if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
			form, err := formValues(opts.Body)
			if err != nil {
				return nil, err
			}
			bodyReader = strings.NewReader(form.Encode())
		} else {
			bodyJSON, err := json.Marshal(opts.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			bodyReader = bytes.NewReader(bodyJSON)
			if contentType == "" {
				contentType = "application/json"
			}
		}
	}

	requestURL := opts.URL
	if len(opts.QueryParams) > 0 {
		var err error
		requestURL, err = withQuery(opts.URL, opts.QueryParams)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// formValues converts the supported body shapes into url.Values.
func formValues(body interface{}) (url.Values, error) {
	form := url.Values{}

	switch v := body.(type) {
	case url.Values:
		form = v
	case map[string]string:
		for k, val := range v {
			form.Set(k, val)
		}
	case map[string]interface{}:
		for k, val := range v {
			if val == nil {
				continue
			}
			form.Set(k, fmt.Sprint(val))
		}
	default:
		// Convert structs (or other JSON-marshalable types) into a map first.
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(bodyJSON, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal request body: %w", err)
		}
		for k, val := range m {
			if val == nil {
				continue
			}
			form.Set(k, fmt.Sprint(val))
		}
	}

	return form, nil
}

func buildMultipartBody(opts RequestOptions) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if opts.Body != nil {
		form, err := formValues(opts.Body)
		if err != nil {
			return nil, "", err
		}
		for field, values := range form {
			for _, value := range values {
				if err := writer.WriteField(field, value); err != nil {
					return nil, "", fmt.Errorf("failed to write form field %q: %w", field, err)
				}
			}
		}
	}

	for field, path := range opts.Files {
		file, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file %q: %w", path, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			file.Close()
			return nil, "", fmt.Errorf("failed to create form file %q: %w", field, err)
		}
		if _, err := io.Copy(part, file); err != nil {
			file.Close()
			return nil, "", fmt.Errorf("failed to copy file %q: %w", path, err)
		}
		file.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalise multipart body: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

func withQuery(rawURL string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("error parsing URL: %w", err)
	}
	q := parsedURL.Query()
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()
	return parsedURL.String(), nil
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
		Context: ctx,
	})
}

func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}
