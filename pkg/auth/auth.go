// Package auth provides Keycloak authentication helpers for the Squonk2
// services. It exchanges user credentials for a bearer access token using
// the OpenID Connect password grant. There is no token storage: callers own
// the token and are expected to call again when it expires.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	httpclient "github.com/informaticsmatters/squonk2-go-client/pkg/http"
)

// ErrAuthenticationFailed is wrapped by every error returned from
// GetAccessToken so callers can distinguish authentication failures with
// errors.Is.
var ErrAuthenticationFailed = errors.New("authentication failed")

// priorTokenValidity is the minimum remaining lifetime a prior token must
// have to be reused without contacting Keycloak.
const priorTokenValidity = time.Minute

// TokenOptions carries the Keycloak coordinates and user credentials for a
// token request.
type TokenOptions struct {
	// KeycloakURL is the server base, typically https://example.com/auth
	KeycloakURL string
	Realm       string
	ClientID    string
	Username    string
	Password    string
	// PriorToken, when set and still valid, is returned unchanged.
	PriorToken string
	Timeout    time.Duration
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticator fetches access tokens from a Keycloak server.
type Authenticator struct {
	httpClient *httpclient.Client
	logger     *zap.Logger
}

func NewAuthenticator() *Authenticator {
	logger, _ := zap.NewProduction()
	return NewAuthenticatorWithLogger(logger)
}

// NewAuthenticatorWithLogger creates an Authenticator with a custom logger
func NewAuthenticatorWithLogger(logger *zap.Logger) *Authenticator {
	return &Authenticator{
		httpClient: httpclient.NewClientWithLogger(logger),
		logger:     logger,
	}
}

// GetAccessToken exchanges the given credentials for a bearer access token.
// When opts.PriorToken still has more than a minute of validity it is
// returned as-is.
func (a *Authenticator) GetAccessToken(ctx context.Context, opts TokenOptions) (string, error) {
	if opts.KeycloakURL == "" || opts.Realm == "" || opts.ClientID == "" {
		return "", fmt.Errorf("%w: keycloak URL, realm and client ID are required", ErrAuthenticationFailed)
	}
	if opts.Username == "" || opts.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrAuthenticationFailed)
	}

	if opts.PriorToken != "" && tokenStillValid(opts.PriorToken) {
		a.logger.Debug("Reusing prior access token")
		return opts.PriorToken, nil
	}

	url := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", opts.KeycloakURL, opts.Realm)
	a.logger.Info("Authenticating with Keycloak",
		zap.String("url", url),
		zap.String("realm", opts.Realm),
		zap.String("client_id", opts.ClientID))

	form := map[string]string{
		"grant_type": "password",
		"client_id":  opts.ClientID,
		"username":   opts.Username,
		"password":   opts.Password,
	}
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := a.httpClient.Do(httpclient.RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    form,
		Timeout: opts.Timeout,
		Context: ctx,
	})
	if err != nil {
		a.logger.Error("Authentication request failed", zap.Error(err), zap.String("url", url))
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Authentication failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(resp.Body)))
		return "", fmt.Errorf("%w: status %d: %s", ErrAuthenticationFailed, resp.StatusCode, string(resp.Body))
	}

	var token tokenResponse
	if err := json.Unmarshal(resp.Body, &token); err != nil {
		a.logger.Error("Failed to parse authentication response", zap.Error(err))
		return "", fmt.Errorf("%w: unexpected response body: %v", ErrAuthenticationFailed, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: no access_token in response", ErrAuthenticationFailed)
	}

	a.logger.Info("Successfully authenticated",
		zap.String("token_type", token.TokenType),
		zap.Int("expires_in", token.ExpiresIn))

	return token.AccessToken, nil
}

// tokenStillValid inspects the exp claim of the (unverified) JWT. The
// signature is the server's concern; here only the expiry matters.
func tokenStillValid(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) > priorTokenValidity
}
