package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const tokenPath = "/oauth/client_credential/accesstoken"

// Upstream tokens last ~12 hours; refresh early so a token never expires
// mid-cycle.
const (
	defaultTokenTTL      = 12 * time.Hour
	tokenRefreshHeadroom = 30 * time.Minute
)

// FetchAccessToken requests a fresh OAuth token using the client credential.
func (c *Client) FetchAccessToken(ctx context.Context) (*TokenResponse, error) {
	if c.authorization == "" {
		return nil, errors.New("authorization credential not configured")
	}

	query := url.Values{}
	query.Set("grant_type", "client_credentials")

	headers := map[string]string{
		"authorization": basicAuth(c.authorization),
	}

	var resp TokenResponse
	if err := c.get(ctx, tokenPath, query, headers, &resp); err != nil {
		return nil, fmt.Errorf("fetch access token: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, errors.New("token response missing access_token")
	}

	return &resp, nil
}

// ensureToken returns a cached access token, fetching a new one when the
// cache is empty or inside the refresh headroom.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	resp, err := c.FetchAccessToken(ctx)
	if err != nil {
		return "", err
	}

	ttl := defaultTokenTTL
	if secs, err := strconv.ParseInt(resp.ExpiresIn, 10, 64); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	if ttl > tokenRefreshHeadroom {
		ttl -= tokenRefreshHeadroom
	}

	c.accessToken = resp.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)

	c.logger.Info("access token refreshed", "expires_in", ttl)

	return c.accessToken, nil
}

// InvalidateToken drops the cached token so the next request fetches a new one.
func (c *Client) InvalidateToken() {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	c.accessToken = ""
	c.tokenExpiry = time.Time{}
}

// basicAuth normalizes the configured credential into an Authorization
// header value. The BASE64_AUTH env var is accepted with or without the
// "Basic " prefix.
func basicAuth(credential string) string {
	if strings.HasPrefix(credential, "Basic ") {
		return credential
	}
	return "Basic " + credential
}
