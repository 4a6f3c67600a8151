package gauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Transport builds and sends exactly one HTTP request per operation and
// decodes the response. It holds no per-call state; concurrent calls are
// independent. There are no retries.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) TransportOption {
	return func(t *Transport) {
		t.httpClient = httpClient
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithBaseURL overrides the API host. Intended for tests; the production
// host is fixed.
func WithBaseURL(baseURL string) TransportOption {
	return func(t *Transport) {
		t.baseURL = baseURL
	}
}

// NewTransport creates a transport against the fixed API host.
func NewTransport(opts ...TransportOption) *Transport {
	t := &Transport{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// requestBody serializes the JSON payload for the operations that carry one.
// The credential-exchange email has the fixed domain suffix appended here,
// just before transmission.
func requestBody(req request) (io.Reader, error) {
	switch r := req.(type) {
	case codeExchangeRequest:
		payload := map[string]string{
			"email":    r.user.Email + EmailDomain,
			"password": r.user.Password,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	case tokenExchangeRequest:
		data, err := json.Marshal(r.service)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	case tokenRefreshRequest, userInfoRequest:
		return nil, nil
	default:
		return nil, fmt.Errorf("unhandled request type %T", req)
	}
}

// bearerToken returns the token the operation sends, if any.
func bearerToken(req request) string {
	switch r := req.(type) {
	case tokenRefreshRequest:
		return r.refreshToken
	case userInfoRequest:
		return r.accessToken
	default:
		return ""
	}
}

// roundTrip issues the single HTTP request for req and returns the raw
// response status and body. A nil error means a response was received,
// whatever its status.
func (t *Transport) roundTrip(ctx context.Context, req request) (int, []byte, error) {
	op := req.operation()
	ep := endpointFor(op)

	body, err := requestBody(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, ep.method, t.baseURL+ep.path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	if ep.hasJSONBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if ep.authHeader != "" {
		httpReq.Header.Set(ep.authHeader, "Bearer "+bearerToken(req))
	}

	t.logger.Debug("sending request",
		"operation", op.String(),
		"method", ep.method,
		"path", ep.path,
	)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	t.logger.Debug("received response",
		"operation", op.String(),
		"status", resp.StatusCode,
	)

	return resp.StatusCode, respBody, nil
}

// send is the single asynchronous primitive behind every operation. It
// issues the request, attempts to decode the success shape, and classifies
// a failed decode by the operation's status table. A decoded success wins
// regardless of status; a transport-level failure (no response at all)
// surfaces as KindUnknown.
func send[T any](ctx context.Context, t *Transport, req request, decode func([]byte) (T, bool)) (T, error) {
	var zero T

	status, body, err := t.roundTrip(ctx, req)
	if err != nil {
		return zero, unknownError(fmt.Sprintf("%s request failed: %v", req.operation(), err), err)
	}

	value, ok := decode(body)
	if !ok {
		return zero, Classify(req.operation(), status)
	}

	return value, nil
}

// decodeTokenPair decodes a token-pair response. Both fields must be
// present for the decode to count as a success.
func decodeTokenPair(body []byte) (TokenPair, bool) {
	var raw struct {
		AccessToken  *string `json:"accessToken"`
		RefreshToken *string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return TokenPair{}, false
	}
	if raw.AccessToken == nil || raw.RefreshToken == nil {
		return TokenPair{}, false
	}
	return TokenPair{AccessToken: *raw.AccessToken, RefreshToken: *raw.RefreshToken}, true
}

// decodeCode extracts the authorization code from an otherwise
// unconstrained JSON object. A missing code field yields an empty code,
// not a decode failure.
func decodeCode(body []byte) (string, bool) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}
	code, _ := raw[codeField].(string)
	return code, true
}

// decodeUserProfile decodes a profile response. Email, gender and role are
// required; the remaining fields are optional.
func decodeUserProfile(body []byte) (UserProfile, bool) {
	var raw struct {
		Email      *string `json:"email"`
		Name       *string `json:"name"`
		Grade      *int    `json:"grade"`
		ClassNum   *int    `json:"classNum"`
		Num        *int    `json:"num"`
		Gender     *string `json:"gender"`
		ProfileURL *string `json:"profileUrl"`
		Role       *string `json:"role"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return UserProfile{}, false
	}
	if raw.Email == nil || raw.Gender == nil || raw.Role == nil {
		return UserProfile{}, false
	}
	return UserProfile{
		Email:      *raw.Email,
		Name:       raw.Name,
		Grade:      raw.Grade,
		ClassNum:   raw.ClassNum,
		Num:        raw.Num,
		Gender:     *raw.Gender,
		ProfileURL: raw.ProfileURL,
		Role:       *raw.Role,
	}, true
}

// ExchangeUserCredentials trades user credentials for an authorization code.
func (t *Transport) ExchangeUserCredentials(ctx context.Context, user UserCredentials) (string, error) {
	return send(ctx, t, codeExchangeRequest{user: user}, decodeCode)
}

// ExchangeCode trades an authorization code for a token pair.
func (t *Transport) ExchangeCode(ctx context.Context, service ServiceCredentials) (TokenPair, error) {
	return send(ctx, t, tokenExchangeRequest{service: service}, decodeTokenPair)
}

// Refresh trades a refresh token for a new token pair.
func (t *Transport) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return send(ctx, t, tokenRefreshRequest{refreshToken: refreshToken}, decodeTokenPair)
}

// UserInfo fetches the profile for the bearer of the access token.
func (t *Transport) UserInfo(ctx context.Context, accessToken string) (UserProfile, error) {
	return send(ctx, t, userInfoRequest{accessToken: accessToken}, decodeUserProfile)
}
