package capture

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func startTestFlow(t *testing.T) *BrowserFlow {
	t.Helper()

	flow, err := StartBrowserFlow(context.Background(), "client-1", FlowConfig{
		SkipBrowser: true,
	})
	if err != nil {
		t.Skipf("could not bind sign-in listener: %v", err)
	}
	t.Cleanup(flow.Stop)
	return flow
}

func TestBrowserFlow_DefaultRedirectURI(t *testing.T) {
	flow := startTestFlow(t)

	if !strings.HasPrefix(flow.RedirectURI(), "http://localhost:") {
		t.Errorf("redirect URI = %q, want a localhost URL", flow.RedirectURI())
	}
	if !strings.HasSuffix(flow.RedirectURI(), "/callback") {
		t.Errorf("redirect URI = %q, want /callback path", flow.RedirectURI())
	}
	if !strings.Contains(flow.LoginURL(), "client_id=client-1") {
		t.Errorf("login URL %q does not carry the client ID", flow.LoginURL())
	}
}

func TestBrowserFlow_CapturesRedirect(t *testing.T) {
	flow := startTestFlow(t)

	resp, err := http.Get(flow.RedirectURI() + "?code=ABC123&state=xyz")
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("callback status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("callback Content-Type = %q, want HTML", ct)
	}
	if !strings.Contains(string(body), "signed in") {
		t.Errorf("success page does not confirm the sign-in: %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	code, err := flow.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if code != "ABC123&state=xyz" {
		t.Errorf("captured %q, want %q", code, "ABC123&state=xyz")
	}
}

func TestBrowserFlow_WaitingPageBeforeRedirect(t *testing.T) {
	flow := startTestFlow(t)

	resp, err := http.Get(flow.RedirectURI())
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if strings.Contains(string(body), "signed in") {
		t.Errorf("waiting page must not claim success: %q", body)
	}
	if got := flow.Session().State(); got != StateWaitingForRedirect {
		t.Errorf("state = %s, want %s", got, StateWaitingForRedirect)
	}
}

func TestBrowserFlow_StopDismissesSession(t *testing.T) {
	flow := startTestFlow(t)

	flow.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := flow.Wait(ctx); err != ErrDismissed {
		t.Errorf("Wait error = %v, want ErrDismissed", err)
	}
}

func TestBrowserFlow_ContextCancellationStopsFlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	flow, err := StartBrowserFlow(ctx, "client-1", FlowConfig{SkipBrowser: true})
	if err != nil {
		t.Skipf("could not bind sign-in listener: %v", err)
	}
	t.Cleanup(flow.Stop)

	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if _, err := flow.Wait(waitCtx); err != ErrDismissed {
		t.Errorf("Wait error = %v, want ErrDismissed", err)
	}
}
