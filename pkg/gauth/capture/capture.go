// Package capture owns navigation of the web surface presenting the
// GAuth login page and extracts the authorization code from the redirect
// exactly once per session.
package capture

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultLoginURL is the hosted login page users authenticate on.
const DefaultLoginURL = "https://gauth.co.kr/login"

// codeMarker is the literal substring a redirect URL is matched against.
// Everything after its first occurrence is the captured code; the match is
// deliberately not a parsed query parameter.
const codeMarker = "code="

// ErrDismissed is returned by Wait when the surface was closed before a
// redirect carrying a code was observed.
var ErrDismissed = errors.New("sign-in surface dismissed before a code was captured")

// State is the capture session's lifecycle state.
type State int

const (
	// StateIdle is the state before the login page load is issued.
	StateIdle State = iota
	// StateLoading means the login page load has been issued.
	StateLoading
	// StateWaitingForRedirect means navigations are being intercepted.
	StateWaitingForRedirect
	// StateCaptured is terminal: a code was extracted and delivered.
	StateCaptured
	// StateDismissed is terminal: the surface closed without a code.
	StateDismissed
)

// String makes State satisfy fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateWaitingForRedirect:
		return "waiting-for-redirect"
	case StateCaptured:
		return "captured"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Decision is the session's answer to an intercepted navigation. Every
// navigation is allowed to proceed; only the capture side effect differs.
type Decision int

// DecisionAllow lets the navigation proceed unchanged.
const DecisionAllow Decision = 0

// Surface is the embedded web surface the session drives. It only needs
// to load a URL and dismiss itself; rendering belongs to the host.
type Surface interface {
	// Load navigates the surface to the given URL.
	Load(rawURL string)

	// Dismiss closes the surface.
	Dismiss()
}

// LoginURL builds the login page URL for a service.
func LoginURL(loginBase, clientID, redirectURI string) string {
	params := url.Values{
		"client_id":    {clientID},
		"redirect_uri": {redirectURI},
	}
	return loginBase + "?" + params.Encode()
}

type captureResult struct {
	code string
	err  error
}

// Session is a one-shot authorization-code capture state machine. One
// instance serves one sign-in attempt: it schedules the login page load,
// inspects every navigation the surface reports, and delivers the code
// through a channel owned by the session, never through ambient state.
type Session struct {
	id       string
	loginURL string
	surface  Surface
	logger   *slog.Logger

	mu    sync.Mutex
	state State

	// result carries the single completion; the state guard ensures at
	// most one write.
	result chan captureResult
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLoginBase overrides the login page host. Intended for tests.
func WithLoginBase(loginBase string) SessionOption {
	return func(s *Session) {
		s.loginURL = LoginURL(loginBase, loginQueryParam(s.loginURL, "client_id"), loginQueryParam(s.loginURL, "redirect_uri"))
	}
}

func loginQueryParam(rawURL, key string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

// NewSession starts a capture session for one sign-in attempt. The login
// page load is scheduled asynchronously, off the construction turn, so the
// caller can wire up observation before any navigation happens.
func NewSession(clientID, redirectURI string, surface Surface, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.NewString(),
		loginURL: LoginURL(DefaultLoginURL, clientID, redirectURI),
		surface:  surface,
		logger:   slog.Default(),
		state:    StateIdle,
		result:   make(chan captureResult, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	go func() {
		s.mu.Lock()
		if s.state != StateIdle {
			s.mu.Unlock()
			return
		}
		s.state = StateLoading
		s.mu.Unlock()

		s.logger.Debug("loading login page", "session", s.id, "url", s.loginURL)
		s.surface.Load(s.loginURL)
	}()

	return s
}

// ID returns the session's identifier, used to correlate log entries.
func (s *Session) ID() string {
	return s.id
}

// LoginURL returns the login page URL this session loads.
func (s *Session) LoginURL() string {
	return s.loginURL
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Observe inspects one intercepted navigation target and always allows it
// to proceed. The first URL containing the code marker captures: the
// session takes everything after the marker's first occurrence as the
// code, dismisses the surface, and completes exactly once. Later
// navigations, matching or not, are no-ops once a terminal state is
// reached.
func (s *Session) Observe(rawURL string) Decision {
	s.mu.Lock()

	switch s.state {
	case StateCaptured, StateDismissed:
		s.mu.Unlock()
		return DecisionAllow
	}

	idx := strings.Index(rawURL, codeMarker)
	if idx < 0 {
		s.state = StateWaitingForRedirect
		s.mu.Unlock()
		return DecisionAllow
	}

	code := rawURL[idx+len(codeMarker):]
	s.state = StateCaptured
	s.mu.Unlock()

	s.logger.Debug("authorization code captured", "session", s.id)

	s.result <- captureResult{code: code}
	s.surface.Dismiss()

	return DecisionAllow
}

// Dismiss records that the surface was closed before a redirect was seen.
// Wait unblocks with ErrDismissed. Calling Dismiss after capture has no
// effect.
func (s *Session) Dismiss() {
	s.mu.Lock()

	switch s.state {
	case StateCaptured, StateDismissed:
		s.mu.Unlock()
		return
	}

	s.state = StateDismissed
	s.mu.Unlock()

	s.logger.Debug("capture session dismissed without code", "session", s.id)

	s.result <- captureResult{err: ErrDismissed}
}

// Wait blocks until the session completes with a captured code, an
// explicit dismissal, or context cancellation. The completion is delivered at most
// once; Wait is meant to be called once per session.
func (s *Session) Wait(ctx context.Context) (string, error) {
	select {
	case r := <-s.result:
		return r.code, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
