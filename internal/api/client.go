package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chorus/internal/shared"
)

// Strategy is the identity scheme the client runs under. The two historical
// schemes are modeled as one tagged variant so the gateway and session
// controller branch on a single discriminant.
type Strategy string

const (
	// StrategyOAuth attaches a bearer access token and fails fast when none
	// is stored. Authoritative variant.
	StrategyOAuth Strategy = "oauth"

	// StrategyImpersonation attaches a selected user id as the X-User-ID
	// header. Non-authoritative by design; the server enforces authorization.
	StrategyImpersonation Strategy = "impersonation"
)

// ParseStrategy maps a config string to a [Strategy], defaulting to OAuth.
func ParseStrategy(s string) Strategy {
	if s == string(StrategyImpersonation) {
		return StrategyImpersonation
	}
	return StrategyOAuth
}

// CredentialSource exposes the session artifacts the gateway needs to attach
// a credential. The gateway is a read-only consumer; the session controller
// is the sole writer.
type CredentialSource interface {
	ImpersonatedUser() (int64, bool) // selected user id under impersonation
	AccessToken() (string, bool)     // bearer token under OAuth
}

// UserIDHeader carries the impersonated user id.
const UserIDHeader = "X-User-ID"

// Client issues every outbound API call.
type Client struct {
	baseURL    string
	strategy   Strategy
	creds      CredentialSource
	httpClient *http.Client
	logger     *log.Logger
	debug      bool
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL    string
	Strategy   Strategy
	Creds      CredentialSource
	HTTPClient *http.Client
	Logger     *log.Logger
	Debug      bool // log outbound requests as cURL commands
}

// NewClient creates a gateway for the Music Collection Manager API.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyOAuth
	}

	return &Client{
		baseURL:    opts.BaseURL,
		strategy:   opts.Strategy,
		creds:      opts.Creds,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		debug:      opts.Debug,
	}
}

// Strategy returns the identity scheme the client runs under.
func (c *Client) Strategy() Strategy {
	return c.strategy
}

// variantAuth reports whether endpoints whose auth requirement depends on the
// identity variant need a credential. Under OAuth the catalog is protected;
// under impersonation it is open.
func (c *Client) variantAuth() bool {
	return c.strategy == StrategyOAuth
}

// Do issues one API call and returns the raw JSON body.
//
// A 204 response yields (nil, nil). Under the OAuth strategy a missing access
// token fails with [shared.ErrUnauthenticated] before any network call is
// made. Under impersonation a missing selected id proceeds unauthenticated
// and the server decides.
func (c *Client) Do(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if requiresAuth {
		if err := c.attachCredential(req); err != nil {
			return nil, err
		}
	}

	if c.debug {
		c.logger.Debug(shared.CurlCommand(method, c.baseURL+path, req.Header, payload))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// attachCredential adds exactly one identity credential to the request.
func (c *Client) attachCredential(req *http.Request) error {
	switch c.strategy {
	case StrategyImpersonation:
		if id, ok := c.creds.ImpersonatedUser(); ok {
			req.Header.Set(UserIDHeader, fmt.Sprintf("%d", id))
		}
		return nil
	default:
		token, ok := c.creds.AccessToken()
		if !ok {
			return shared.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// doJSON issues a call and decodes the response body into out when both are
// non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, requiresAuth bool, out any) error {
	raw, err := c.Do(ctx, method, path, body, requiresAuth)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
