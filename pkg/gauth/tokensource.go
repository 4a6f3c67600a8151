package gauth

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// TokenSource bridges a token pair to the golang.org/x/oauth2 ecosystem.
// Token returns the currently held access token; the server reports no
// expiry, so the source never refreshes on its own. A caller that observes
// a token-expired failure calls Refresh and reissues its request itself;
// there is no automatic retry.
type TokenSource struct {
	client *Client

	mu      sync.RWMutex
	current TokenPair

	// group collapses concurrent Refresh calls into one request. The
	// facade operations themselves stay deduplication-free; this applies
	// only to the bridge.
	group singleflight.Group
}

var _ oauth2.TokenSource = (*TokenSource)(nil)

// TokenSource wraps an already obtained token pair.
func (c *Client) TokenSource(initial TokenPair) *TokenSource {
	return &TokenSource{
		client:  c,
		current: initial,
	}
}

// Token implements oauth2.TokenSource.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.current.ToOAuth2Token(), nil
}

// Pair returns the currently held token pair.
func (ts *TokenSource) Pair() TokenPair {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.current
}

// Refresh exchanges the held refresh token for a new pair and stores it.
// Concurrent callers share a single refresh request and its outcome.
func (ts *TokenSource) Refresh(ctx context.Context) (TokenPair, error) {
	v, err, _ := ts.group.Do("refresh", func() (any, error) {
		ts.mu.RLock()
		refreshToken := ts.current.RefreshToken
		ts.mu.RUnlock()

		pair, err := ts.client.Refresh(ctx, refreshToken)
		if err != nil {
			return nil, err
		}

		ts.mu.Lock()
		ts.current = pair
		ts.mu.Unlock()

		return pair, nil
	})
	if err != nil {
		return TokenPair{}, err
	}

	return v.(TokenPair), nil
}
