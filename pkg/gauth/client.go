package gauth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Config configures a Client. ClientID, ClientSecret and RedirectURI are
// mandatory; requiring them at construction makes an unconfigured client
// unrepresentable.
type Config struct {
	// ClientID identifies the registered service.
	ClientID string

	// ClientSecret authenticates the registered service.
	ClientSecret string

	// RedirectURI must match the URI registered for the service.
	RedirectURI string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// Logger is an optional structured logger.
	Logger *slog.Logger

	// Dispatcher receives callback-convention completions. Defaults to
	// AsyncDispatcher.
	Dispatcher Dispatcher

	// BaseURL overrides the fixed API host. Intended for tests.
	BaseURL string
}

// Client is the public entry point for the four operations. Every
// operation is exposed in three interchangeable calling conventions:
// a direct context-suspending call, a cold single-value stream, and a
// one-shot callback. All three resolve to equivalent results for
// equivalent inputs.
//
// Operations are never cached, deduplicated or retried; concurrent calls
// run independently.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	transport    *Transport
	dispatcher   Dispatcher
}

// NewClient creates a client for one registered service.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURI == "" {
		return nil, errors.New("redirect URI is required")
	}

	var opts []TransportOption
	if cfg.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}

	dispatcher := cfg.Dispatcher
	if dispatcher == nil {
		dispatcher = AsyncDispatcher{}
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		transport:    NewTransport(opts...),
		dispatcher:   dispatcher,
	}, nil
}

// RedirectURI returns the redirect URI the client was configured with.
// The capture session for this service must observe navigations to it.
func (c *Client) RedirectURI() string {
	return c.redirectURI
}

// ClientID returns the configured client ID.
func (c *Client) ClientID() string {
	return c.clientID
}

// credentials builds the immutable per-attempt exchange credentials.
func (c *Client) credentials(code string) ServiceCredentials {
	return NewServiceCredentials(code, c.clientID, c.clientSecret, c.redirectURI)
}

// ExchangeCode trades a captured authorization code for a token pair.
func (c *Client) ExchangeCode(ctx context.Context, code string) (TokenPair, error) {
	return c.transport.ExchangeCode(ctx, c.credentials(code))
}

// ExchangeUserCredentials trades a user's email and password for an
// authorization code, bypassing the web login page.
func (c *Client) ExchangeUserCredentials(ctx context.Context, user UserCredentials) (string, error) {
	return c.transport.ExchangeUserCredentials(ctx, user)
}

// Refresh trades a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return c.transport.Refresh(ctx, refreshToken)
}

// UserInfo fetches the profile of the access token's bearer.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (UserProfile, error) {
	return c.transport.UserInfo(ctx, accessToken)
}

// ExchangeCodeStream is the stream form of ExchangeCode.
func (c *Client) ExchangeCodeStream(code string) *Subscription[TokenPair] {
	return newSubscription(func(ctx context.Context) (TokenPair, error) {
		return c.ExchangeCode(ctx, code)
	})
}

// ExchangeUserCredentialsStream is the stream form of ExchangeUserCredentials.
func (c *Client) ExchangeUserCredentialsStream(user UserCredentials) *Subscription[string] {
	return newSubscription(func(ctx context.Context) (string, error) {
		return c.ExchangeUserCredentials(ctx, user)
	})
}

// RefreshStream is the stream form of Refresh.
func (c *Client) RefreshStream(refreshToken string) *Subscription[TokenPair] {
	return newSubscription(func(ctx context.Context) (TokenPair, error) {
		return c.Refresh(ctx, refreshToken)
	})
}

// UserInfoStream is the stream form of UserInfo.
func (c *Client) UserInfoStream(accessToken string) *Subscription[UserProfile] {
	return newSubscription(func(ctx context.Context) (UserProfile, error) {
		return c.UserInfo(ctx, accessToken)
	})
}

// ExchangeCodeAsync is the callback form of ExchangeCode. The completion
// is invoked exactly once, on the client's dispatcher.
func (c *Client) ExchangeCodeAsync(code string, done func(Result[TokenPair])) {
	dispatchCall(c.dispatcher, func(ctx context.Context) (TokenPair, error) {
		return c.ExchangeCode(ctx, code)
	}, done)
}

// ExchangeUserCredentialsAsync is the callback form of ExchangeUserCredentials.
func (c *Client) ExchangeUserCredentialsAsync(user UserCredentials, done func(Result[string])) {
	dispatchCall(c.dispatcher, func(ctx context.Context) (string, error) {
		return c.ExchangeUserCredentials(ctx, user)
	}, done)
}

// RefreshAsync is the callback form of Refresh.
func (c *Client) RefreshAsync(refreshToken string, done func(Result[TokenPair])) {
	dispatchCall(c.dispatcher, func(ctx context.Context) (TokenPair, error) {
		return c.Refresh(ctx, refreshToken)
	}, done)
}

// UserInfoAsync is the callback form of UserInfo.
func (c *Client) UserInfoAsync(accessToken string, done func(Result[UserProfile])) {
	dispatchCall(c.dispatcher, func(ctx context.Context) (UserProfile, error) {
		return c.UserInfo(ctx, accessToken)
	}, done)
}
