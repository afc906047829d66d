package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
	"golang.org/x/oauth2"
)

// State is the session controller's position in the authentication machine.
type State int

const (
	StateSignedOut State = iota
	StateCallbackPending
	StateSignedIn
	StateError
)

func (s State) String() string {
	switch s {
	case StateSignedOut:
		return "signed-out"
	case StateCallbackPending:
		return "callback-pending"
	case StateSignedIn:
		return "signed-in"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Controller orchestrates login, logout, callback completion, and
// current-user refresh. It is the sole writer of the [Store] after the
// initial load.
type Controller struct {
	mu          sync.Mutex
	client      *api.Client
	store       Store
	strategy    api.Strategy
	redirectURI string
	oauthConf   *oauth2.Config
	openURL     func(string) error
	logger      *log.Logger
	state       State
	lastErr     error
}

// ControllerOpts contains configuration options for creating a Controller.
type ControllerOpts struct {
	Client      *api.Client
	Store       Store
	Strategy    api.Strategy
	RedirectURI string

	// OAuthConfig enables direct-provider code exchange. When nil the
	// exchange goes through the API backend's /auth/token endpoint.
	OAuthConfig *oauth2.Config

	// OpenURL navigates the browser; defaults to [shared.OpenBrowser].
	OpenURL func(string) error

	Logger *log.Logger
}

// NewController creates a session controller in the SignedOut state.
// Call [Controller.Restore] to pick up a persisted session.
func NewController(opts ControllerOpts) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.Strategy == "" {
		opts.Strategy = api.StrategyOAuth
	}

	return &Controller{
		client:      opts.Client,
		store:       opts.Store,
		strategy:    opts.Strategy,
		redirectURI: opts.RedirectURI,
		oauthConf:   opts.OAuthConfig,
		openURL:     opts.OpenURL,
		logger:      opts.Logger,
		state:       StateSignedOut,
	}
}

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure that moved the controller into the Error sub-state.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SignedIn reports whether the session currently carries an identity.
func (c *Controller) SignedIn() bool {
	return c.State() == StateSignedIn
}

// CurrentUser returns the cached profile, or nil when none is cached.
// Under impersonation there is no profile; callers use the selected id.
func (c *Controller) CurrentUser() *models.User {
	return c.store.CachedProfile()
}

// Restore loads the persisted session on startup. With tokens but no cached
// profile (fresh run against a persisted token file) the profile is fetched;
// an authorization failure there invalidates the whole session.
func (c *Controller) Restore(ctx context.Context) error {
	if c.strategy == api.StrategyImpersonation {
		if _, ok := c.store.ImpersonatedUser(); ok {
			c.setState(StateSignedIn, nil)
		}
		return nil
	}

	tok := c.store.Tokens()
	if tok == nil {
		return nil
	}

	if c.store.CachedProfile() != nil {
		c.setState(StateSignedIn, nil)
		return nil
	}

	_, err := c.RefreshCurrentUser(ctx)
	return err
}

// BeginLogin requests the provider login URL and navigates the browser to it.
// No local state is mutated until the callback returns. The returned state
// parameter is non-empty only for the direct-provider flow, where the
// callback server must verify it.
func (c *Controller) BeginLogin(ctx context.Context) (string, error) {
	if c.strategy == api.StrategyImpersonation {
		return "", shared.ErrInvalidArgument
	}

	var loginURL, state string

	if c.oauthConf != nil {
		state = shared.GenerateState()
		loginURL = c.oauthConf.AuthCodeURL(state)
	} else {
		var err error
		loginURL, err = c.client.LoginURL(ctx)
		if err != nil {
			return "", err
		}
	}

	c.logger.Infof("opening provider login page")
	if err := c.openURL(loginURL); err != nil {
		return "", err
	}

	return state, nil
}

// CompleteCallback exchanges the authorization code for a token pair, fetches
// and caches the profile, and transitions to SignedIn.
//
// The commit is all-or-nothing: if the exchange or the profile fetch fails
// the store is left (or wiped back to) empty and the controller lands in the
// Error sub-state, effectively signed out.
func (c *Controller) CompleteCallback(ctx context.Context, code string) error {
	c.setState(StateCallbackPending, nil)

	pair, err := c.exchange(ctx, code)
	if err != nil {
		c.setState(StateError, err)
		return err
	}

	c.store.SetTokens(pair)

	profile, err := c.client.CurrentUser(ctx)
	if err != nil {
		// Tokens are never left partially set.
		c.store.ClearAll()
		c.setState(StateError, err)
		return err
	}

	c.store.SetCachedProfile(profile)
	c.setState(StateSignedIn, nil)
	c.logger.Infof("signed in as %s (%s)", profile.Username, profile.Role)
	return nil
}

func (c *Controller) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if c.oauthConf != nil {
		tok, err := c.oauthConf.Exchange(ctx, code)
		if err != nil {
			return nil, err
		}
		return tok, nil
	}

	pair, err := c.client.ExchangeCode(ctx, code, c.redirectURI)
	if err != nil {
		return nil, err
	}
	return tokenFromPair(pair), nil
}

// Logout revokes the refresh token best-effort, then unconditionally clears
// all local session state. Local state always wins: a user can log out while
// offline.
func (c *Controller) Logout(ctx context.Context) {
	if c.strategy == api.StrategyOAuth {
		if tok := c.store.Tokens(); tok != nil && tok.RefreshToken != "" {
			if err := c.client.Logout(ctx, tok.RefreshToken); err != nil {
				c.logger.Warnf("remote logout failed: %v", err)
			}
		}

		if logoutURL, err := c.client.ProviderLogoutURL(ctx); err == nil && logoutURL != "" {
			if err := c.openURL(logoutURL); err != nil {
				c.logger.Warnf("failed to open provider logout page: %v", err)
			}
		}
	}

	c.store.ClearAll()
	c.setState(StateSignedOut, nil)
}

// RefreshCurrentUser fetches the token's profile and caches it. A 401/403 or
// local credential miss invalidates the session: all state is cleared and the
// controller returns to SignedOut rather than retrying with a stale identity.
func (c *Controller) RefreshCurrentUser(ctx context.Context) (*models.User, error) {
	if c.store.Tokens() == nil {
		return nil, shared.ErrNotSignedIn
	}

	profile, err := c.client.CurrentUser(ctx)
	if err != nil {
		if invalidCredential(err) {
			c.logger.Warnf("stored token rejected, clearing session: %v", err)
			c.store.ClearAll()
			c.setState(StateSignedOut, nil)
		}
		return nil, err
	}

	c.store.SetCachedProfile(profile)
	c.setState(StateSignedIn, nil)
	return profile, nil
}

// RefreshTokens trades the refresh token for a new pair. All-or-nothing: on
// failure the session resets rather than keeping a half-valid pair.
func (c *Controller) RefreshTokens(ctx context.Context) error {
	tok := c.store.Tokens()
	if tok == nil || tok.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}

	pair, err := c.client.RefreshTokens(ctx, tok.RefreshToken)
	if err != nil {
		c.store.ClearAll()
		c.setState(StateError, err)
		return err
	}

	c.store.SetTokens(tokenFromPair(pair))
	return nil
}

// Impersonate selects a user id under the impersonation strategy. There is
// no network validation; authorization is enforced server-side.
func (c *Controller) Impersonate(id int64) error {
	if c.strategy != api.StrategyImpersonation {
		return shared.ErrInvalidArgument
	}
	c.store.SetImpersonatedUser(id)
	c.setState(StateSignedIn, nil)
	return nil
}

// ImpersonatedUser returns the selected user id under the impersonation
// strategy, if any.
func (c *Controller) ImpersonatedUser() (int64, bool) {
	return c.store.ImpersonatedUser()
}

// ClearImpersonation deselects the impersonated user.
func (c *Controller) ClearImpersonation() {
	c.store.ClearImpersonatedUser()
	c.setState(StateSignedOut, nil)
}

func (c *Controller) setState(s State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.lastErr = err
}

// invalidCredential reports whether err means the stored identity is no
// longer valid, as opposed to a retryable transport failure.
func invalidCredential(err error) bool {
	if errors.Is(err, shared.ErrUnauthenticated) {
		return true
	}
	return api.IsStatus(err, http.StatusUnauthorized) || api.IsStatus(err, http.StatusForbidden)
}

func tokenFromPair(pair *models.TokenPair) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}
