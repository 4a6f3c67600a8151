package gauth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_Token(t *testing.T) {
	client := newTestClient(t, tokenHandler(http.StatusOK, `{}`))
	ts := client.TokenSource(TokenPair{AccessToken: "at", RefreshToken: "rt"})

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "rt", token.RefreshToken)
	assert.True(t, token.Expiry.IsZero(), "no expiry is reported by the server")
}

func TestTokenSource_Refresh(t *testing.T) {
	t.Run("replaces the held pair", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer rt-0", r.Header.Get("refreshToken"))
			_, _ = w.Write([]byte(`{"accessToken":"at-1","refreshToken":"rt-1"}`))
		})
		ts := client.TokenSource(TokenPair{AccessToken: "at-0", RefreshToken: "rt-0"})

		pair, err := ts.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TokenPair{AccessToken: "at-1", RefreshToken: "rt-1"}, pair)
		assert.Equal(t, pair, ts.Pair())
	})

	t.Run("failure keeps the held pair", func(t *testing.T) {
		client := newTestClient(t, tokenHandler(http.StatusUnauthorized, `{}`))
		initial := TokenPair{AccessToken: "at-0", RefreshToken: "rt-0"}
		ts := client.TokenSource(initial)

		_, err := ts.Refresh(context.Background())
		assert.True(t, IsKind(err, KindTokenExpiredOrInvalid))
		assert.Equal(t, initial, ts.Pair())
	})

	t.Run("concurrent refreshes share one request", func(t *testing.T) {
		var requests atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			n := requests.Add(1)
			time.Sleep(100 * time.Millisecond)
			fmt.Fprintf(w, `{"accessToken":"at-%d","refreshToken":"rt-%d"}`, n, n)
		})
		ts := client.TokenSource(TokenPair{AccessToken: "at-0", RefreshToken: "rt-0"})

		var wg sync.WaitGroup
		pairs := make([]TokenPair, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				pair, err := ts.Refresh(context.Background())
				assert.NoError(t, err)
				pairs[i] = pair
			}(i)
		}
		wg.Wait()

		assert.EqualValues(t, 1, requests.Load())
		for _, pair := range pairs {
			assert.Equal(t, pairs[0], pair)
		}
	})
}
