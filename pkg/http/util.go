package http

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL joins a base URL and path and encodes the given query parameters.
// The base URL may itself carry a path prefix (e.g. /data-manager-api).
func BuildURL(baseURL, path string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/") + path

	q := url.Values{}
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}
