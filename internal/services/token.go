package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/desertthunder/mymusic/internal/shared"
)

const tokenProviderAuthPath = "/api/v1/auth"

// Authenticator validates caller credentials.
type Authenticator interface {
	Validate(ctx context.Context, name, token string) error
}

// TokenProvider validates caller tokens against a remote token provider.
type TokenProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewTokenProvider creates a client for the token provider at baseURL.
//
// A nil client falls back to [http.DefaultClient].
func NewTokenProvider(baseURL string, client *http.Client) *TokenProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenProvider{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

// NewTokenProviderFromConfig builds a TokenProvider, authenticating its own calls with OAuth2
// client credentials when cfg carries a client ID.
func NewTokenProviderFromConfig(ctx context.Context, cfg shared.AuthConfig) (*TokenProvider, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: auth.token_provider_url", shared.ErrMissingConfig)
	}

	var client *http.Client
	if cfg.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client = cc.Client(ctx)
	}
	return NewTokenProvider(cfg.TokenProviderURL, client), nil
}

type tokenRequest struct {
	Data tokenRequestData `json:"data"`
}

type tokenRequestData struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Validate asks the provider whether token belongs to name.
//
// A 4xx answer is reported as [shared.ErrInvalidCredentials]; transport failures and other
// statuses wrap [shared.ErrAPIRequest].
func (p *TokenProvider) Validate(ctx context.Context, name, token string) error {
	if name == "" || token == "" {
		return fmt.Errorf("%w: name and token are required", shared.ErrMissingCredentials)
	}

	body, err := json.Marshal(tokenRequest{Data: tokenRequestData{Name: name, Token: token}})
	if err != nil {
		return fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+tokenProviderAuthPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: token provider returned %d", shared.ErrInvalidCredentials, resp.StatusCode)
	default:
		return fmt.Errorf("%w: token provider returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}
}
