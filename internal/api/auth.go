package api

import (
	"context"
	"net/http"

	"github.com/desertthunder/chorus/internal/models"
)

type loginURLResponse struct {
	LoginURL string `json:"login_url"`
}

type logoutURLResponse struct {
	LogoutURL string `json:"logout_url"`
}

type tokenExchangeRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LoginURL fetches the identity provider's login URL. The browser is then
// navigated there with a full-page redirect.
func (c *Client) LoginURL(ctx context.Context) (string, error) {
	var resp loginURLResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/login-url", nil, false, &resp); err != nil {
		return "", err
	}
	return resp.LoginURL, nil
}

// ExchangeCode trades an authorization code plus the fixed redirect URI for
// an access/refresh token pair.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenPair, error) {
	body := tokenExchangeRequest{Code: code, RedirectURI: redirectURI}
	var pair models.TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/auth/token", body, false, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshTokens trades a refresh token for a new token pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	body := refreshRequest{RefreshToken: refreshToken}
	var pair models.TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", body, false, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// CurrentUser fetches the profile of the token's subject.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout asks the server to revoke the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := logoutRequest{RefreshToken: refreshToken}
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", body, true, nil)
}

// ProviderLogoutURL fetches the identity provider's logout URL so the browser
// session can be ended as well.
func (c *Client) ProviderLogoutURL(ctx context.Context) (string, error) {
	var resp logoutURLResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/keycloak-logout-url", nil, false, &resp); err != nil {
		return "", err
	}
	return resp.LogoutURL, nil
}
