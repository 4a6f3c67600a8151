package gauth

import (
	"golang.org/x/oauth2"
)

// EmailDomain is the fixed domain suffix appended to the local part of a
// user's email before the credential exchange request is sent.
const EmailDomain = "@gsm.hs.kr"

// ServiceCredentials identifies a registered service together with the
// authorization code being exchanged. A value is constructed once per
// exchange attempt and never mutated afterwards.
type ServiceCredentials struct {
	// Code is the authorization code captured from the login redirect.
	Code string `json:"code"`

	// ClientID identifies the registered service.
	ClientID string `json:"clientId"`

	// ClientSecret authenticates the registered service.
	ClientSecret string `json:"clientSecret"`

	// RedirectURI must match the URI the service registered.
	RedirectURI string `json:"redirectUri"`
}

// NewServiceCredentials builds the credentials for one code-exchange attempt.
func NewServiceCredentials(code, clientID, clientSecret, redirectURI string) ServiceCredentials {
	return ServiceCredentials{
		Code:         code,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
	}
}

// UserCredentials carries a user's sign-in credentials for the credential
// exchange path. Email holds only the local part; the transport appends
// EmailDomain before transmission.
type UserCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the access/refresh token pair returned by the token exchange
// and refresh operations. Both tokens are opaque strings and are never
// parsed by this package.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ToOAuth2Token converts the pair to a golang.org/x/oauth2 token so it can
// be handed to the wider x/oauth2 ecosystem. The server does not report an
// expiry, so the returned token carries none.
func (p TokenPair) ToOAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: p.RefreshToken,
	}
}

// UserProfile is the authenticated user's profile as returned by the user
// info operation. Email, Gender and Role are always present on success;
// the pointer fields are populated only for certain roles.
type UserProfile struct {
	Email      string  `json:"email"`
	Name       *string `json:"name,omitempty"`
	Grade      *int    `json:"grade,omitempty"`
	ClassNum   *int    `json:"classNum,omitempty"`
	Num        *int    `json:"num,omitempty"`
	Gender     string  `json:"gender"`
	ProfileURL *string `json:"profileUrl,omitempty"`
	Role       string  `json:"role"`
}

// Result is the uniform outcome of one logical operation invocation. It is
// the value delivered by the stream and callback calling conventions; the
// direct convention returns the equivalent (value, error) pair.
type Result[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the result carries an error.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Unpack returns the result as a conventional (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}

func success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Err: err}
}
