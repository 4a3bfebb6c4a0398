package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"image-resizer/internal/config"
	"image-resizer/internal/metrics"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// TwitterOAuthProvider drives the authorization code + PKCE flow against
// Twitter's OAuth 2.0 endpoints.
type TwitterOAuthProvider struct {
	oauth2Config *oauth2.Config
	httpClient   *http.Client
}

// NewTwitterOAuthProvider creates a provider from config. Missing credentials
// are not an error here; the token endpoint rejects them at exchange time.
func NewTwitterOAuthProvider(cfg config.TwitterConfig) *TwitterOAuthProvider {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizeURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes:      cfg.Scopes,
		RedirectURL: cfg.CallbackURL,
	}

	return &TwitterOAuthProvider{
		oauth2Config: oauth2Config,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (p *TwitterOAuthProvider) GetOAuth2Config() *oauth2.Config {
	return p.oauth2Config
}

// GenerateState returns 32 random bytes encoded as unpadded base64url.
func (p *TwitterOAuthProvider) GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (p *TwitterOAuthProvider) GenerateVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthCodeURL builds the authorize URL carrying state and the S256 challenge
// derived from verifier.
func (p *TwitterOAuthProvider) AuthCodeURL(state, verifier string) string {
	return p.oauth2Config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange trades an authorization code and its PKCE verifier for a token
// pair. A non-2xx response from the token endpoint is returned as an error and
// is never retried.
func (p *TwitterOAuthProvider) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	clientCtx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	start := time.Now()
	token, err := p.oauth2Config.Exchange(clientCtx, code, oauth2.VerifierOption(verifier))
	metrics.TwitterRequestDuration.WithLabelValues(metrics.TwitterOperationToken).Observe(time.Since(start).Seconds())

	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			metrics.TwitterRequestsTotal.WithLabelValues(metrics.TwitterOperationToken, strconv.Itoa(retrieveErr.Response.StatusCode)).Inc()
			return nil, fmt.Errorf("token exchange failed: %s", describeRetrieveError(retrieveErr))
		}

		metrics.TwitterRequestsTotal.WithLabelValues(metrics.TwitterOperationToken, "error").Inc()
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	metrics.TwitterRequestsTotal.WithLabelValues(metrics.TwitterOperationToken, strconv.Itoa(http.StatusOK)).Inc()

	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange failed: response did not contain an access token")
	}

	return token, nil
}

func describeRetrieveError(err *oauth2.RetrieveError) string {
	switch {
	case err.ErrorCode != "" && err.ErrorDescription != "":
		return fmt.Sprintf("%s: %s", err.ErrorCode, err.ErrorDescription)
	case err.ErrorCode != "":
		return err.ErrorCode
	case err.Response != nil:
		return err.Response.Status
	default:
		return err.Error()
	}
}
