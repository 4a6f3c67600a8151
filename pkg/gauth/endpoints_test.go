package gauth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointFor(t *testing.T) {
	tests := []struct {
		op   Operation
		want endpoint
	}{
		{CodeExchange, endpoint{method: http.MethodPost, path: "/oauth/code", hasJSONBody: true}},
		{TokenExchange, endpoint{method: http.MethodPost, path: "/oauth/token", hasJSONBody: true}},
		{TokenRefresh, endpoint{method: http.MethodPatch, path: "/oauth/token", authHeader: "refreshToken"}},
		{UserInfo, endpoint{method: http.MethodGet, path: "/user", authHeader: "Authorization"}},
	}

	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			assert.Equal(t, test.want, endpointFor(test.op))
		})
	}
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "code-exchange", CodeExchange.String())
	assert.Equal(t, "token-exchange", TokenExchange.String())
	assert.Equal(t, "token-refresh", TokenRefresh.String())
	assert.Equal(t, "user-info", UserInfo.String())
	assert.Equal(t, "unknown-operation", Operation(9).String())
}
