package gauth

import "net/http"

// DefaultBaseURL is the fixed API host. All wire operations are rooted here.
const DefaultBaseURL = "https://server.gauth.co.kr"

// codeField is the JSON field holding the authorization code in a
// code-exchange response.
const codeField = "code"

// Operation identifies one of the four fixed server interactions.
type Operation int

const (
	// CodeExchange trades user credentials for an authorization code.
	CodeExchange Operation = iota
	// TokenExchange trades an authorization code for a token pair.
	TokenExchange
	// TokenRefresh trades a refresh token for a new token pair.
	TokenRefresh
	// UserInfo fetches the authenticated user's profile.
	UserInfo
)

// String makes Operation satisfy fmt.Stringer for log output.
func (op Operation) String() string {
	switch op {
	case CodeExchange:
		return "code-exchange"
	case TokenExchange:
		return "token-exchange"
	case TokenRefresh:
		return "token-refresh"
	case UserInfo:
		return "user-info"
	default:
		return "unknown-operation"
	}
}

// endpoint describes the wire shape of one operation: how the request is
// built and which header, if any, carries the bearer token.
type endpoint struct {
	method      string
	path        string
	hasJSONBody bool
	// authHeader is the name of the header carrying "Bearer <token>",
	// empty when the operation sends no token.
	authHeader string
}

// endpointFor is the static catalog of the four operations. The switch is
// exhaustive over Operation; new operations must extend it.
func endpointFor(op Operation) endpoint {
	switch op {
	case CodeExchange:
		return endpoint{method: http.MethodPost, path: "/oauth/code", hasJSONBody: true}
	case TokenExchange:
		return endpoint{method: http.MethodPost, path: "/oauth/token", hasJSONBody: true}
	case TokenRefresh:
		return endpoint{method: http.MethodPatch, path: "/oauth/token", authHeader: "refreshToken"}
	case UserInfo:
		return endpoint{method: http.MethodGet, path: "/user", authHeader: "Authorization"}
	default:
		return endpoint{}
	}
}

// request is the closed set of operation payloads. Each variant carries the
// typed payload of exactly one operation; the transport dispatches on the
// concrete type.
type request interface {
	operation() Operation
}

type codeExchangeRequest struct {
	user UserCredentials
}

func (codeExchangeRequest) operation() Operation { return CodeExchange }

type tokenExchangeRequest struct {
	service ServiceCredentials
}

func (tokenExchangeRequest) operation() Operation { return TokenExchange }

type tokenRefreshRequest struct {
	refreshToken string
}

func (tokenRefreshRequest) operation() Operation { return TokenRefresh }

type userInfoRequest struct {
	accessToken string
}

func (userInfoRequest) operation() Operation { return UserInfo }
