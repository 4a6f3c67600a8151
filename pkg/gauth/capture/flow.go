package capture

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultCallbackPort is the default port for the local sign-in listener.
const DefaultCallbackPort = 3000

//go:embed templates/signin_success.html
var signinSuccessHTML string

//go:embed templates/signin_waiting.html
var signinWaitingHTML string

var (
	successTemplate = template.Must(template.New("success").Parse(signinSuccessHTML))
	waitingTemplate = template.Must(template.New("waiting").Parse(signinWaitingHTML))
)

// FlowConfig configures a browser-based capture flow.
type FlowConfig struct {
	// Port is the local listener port. 0 selects DefaultCallbackPort.
	Port int

	// RedirectURI overrides the redirect target. Defaults to
	// http://localhost:<port>/callback. It must resolve to the local
	// listener or the redirect will never be observed.
	RedirectURI string

	// SkipBrowser suppresses opening the system browser; the login URL
	// is logged instead so the user can open it manually.
	SkipBrowser bool

	// LoginBase overrides the login page host. Intended for tests.
	LoginBase string

	// Logger is an optional structured logger.
	Logger *slog.Logger
}

// BrowserFlow is the loopback rendition of the embedded web surface: the
// system browser presents the login page and a temporary local HTTP
// server stands in for the redirect target. Every request the listener
// receives is reported to the capture session as a navigation.
type BrowserFlow struct {
	session     *Session
	server      *http.Server
	listener    net.Listener
	serverURL   string
	redirectURI string
	skipBrowser bool
	logger      *slog.Logger
	stopOnce    sync.Once
}

// browserSurface adapts the flow to the Surface the session drives.
type browserSurface struct {
	flow *BrowserFlow
}

// Load opens the login page in the system browser.
func (b browserSurface) Load(rawURL string) {
	if b.flow.skipBrowser {
		b.flow.logger.Info("open this URL in your browser to sign in", "url", rawURL)
		return
	}

	if err := OpenBrowser(rawURL); err != nil {
		b.flow.logger.Warn("failed to open browser, open the URL manually",
			"url", rawURL,
			"error", err.Error(),
		)
	}
}

// Dismiss tears the listener down once the response had time to flush.
func (b browserSurface) Dismiss() {
	go func() {
		time.Sleep(1 * time.Second)
		b.flow.Stop()
	}()
}

// StartBrowserFlow starts the local listener and the capture session for
// one sign-in attempt. The flow stops automatically when ctx is
// cancelled.
func StartBrowserFlow(ctx context.Context, clientID string, cfg FlowConfig) (*BrowserFlow, error) {
	port := cfg.Port
	if port == 0 {
		port = DefaultCallbackPort
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start sign-in listener on port %d: %w", port, err)
	}
	port = listener.Addr().(*net.TCPAddr).Port

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f := &BrowserFlow{
		listener:    listener,
		serverURL:   fmt.Sprintf("http://localhost:%d", port),
		skipBrowser: cfg.SkipBrowser,
		logger:      logger,
	}

	f.redirectURI = cfg.RedirectURI
	if f.redirectURI == "" {
		f.redirectURI = f.serverURL + "/callback"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", f.handleNavigation)

	f.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := f.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("sign-in listener stopped unexpectedly", "error", err.Error())
		}
	}()

	go func() {
		<-ctx.Done()
		f.Stop()
	}()

	var sessionOpts []SessionOption
	sessionOpts = append(sessionOpts, WithLogger(logger))
	if cfg.LoginBase != "" {
		sessionOpts = append(sessionOpts, WithLoginBase(cfg.LoginBase))
	}

	f.session = NewSession(clientID, f.redirectURI, browserSurface{flow: f}, sessionOpts...)

	return f, nil
}

// handleNavigation reports the incoming request to the session as an
// intercepted navigation and renders a page reflecting the outcome.
func (f *BrowserFlow) handleNavigation(w http.ResponseWriter, r *http.Request) {
	if f.session == nil {
		http.Error(w, "sign-in not started", http.StatusServiceUnavailable)
		return
	}

	target := f.serverURL + r.URL.String()
	f.session.Observe(target)

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl := waitingTemplate
	if f.session.State() == StateCaptured {
		tmpl = successTemplate
	}

	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Session returns the flow's capture session.
func (f *BrowserFlow) Session() *Session {
	return f.session
}

// LoginURL returns the login page URL the flow presents.
func (f *BrowserFlow) LoginURL() string {
	return f.session.LoginURL()
}

// RedirectURI returns the redirect URI the listener serves.
func (f *BrowserFlow) RedirectURI() string {
	return f.redirectURI
}

// Wait blocks until a code is captured, the flow is stopped, or the
// context is cancelled.
func (f *BrowserFlow) Wait(ctx context.Context) (string, error) {
	return f.session.Wait(ctx)
}

// Stop shuts the listener down and dismisses the session if no code was
// captured. Safe to call more than once.
func (f *BrowserFlow) Stop() {
	f.stopOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = f.server.Shutdown(shutdownCtx)
		_ = f.listener.Close()

		if f.session != nil {
			f.session.Dismiss()
		}
	})
}
